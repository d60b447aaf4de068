package payments

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/PaesslerAG/jsonpath"
)

// Snapshot is a read-only view of all accounts at the end of a run, sorted by
// client id.
type Snapshot struct {
	Accounts []Account
}

// Len returns the number of accounts in the snapshot.
func (s Snapshot) Len() int { return len(s.Accounts) }

// Account returns the account of 'client', if it is known.
func (s Snapshot) Account(client ClientID) (Account, bool) {
	for _, a := range s.Accounts {
		if a.ClientID == client {
			return a, true
		}
	}
	return Account{}, false
}

// All returns an iterator over the accounts in client id order.
func (s Snapshot) All() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for _, a := range s.Accounts {
			if !yield(a) {
				return
			}
		}
	}
}

// Locked returns an iterator over the locked accounts.
func (s Snapshot) Locked() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for a := range s.All() {
			if a.Locked && !yield(a) {
				return
			}
		}
	}
}

// Totals sums the balances of all accounts.
//
// Each account total is representable but their sum might not be, hence the
// error.
func (s Snapshot) Totals() (available, held Amount, err error) {
	for a := range s.All() {
		if available, err = available.Add(a.Available); err != nil {
			return Zero, Zero, fmt.Errorf("cannot sum available funds: %w", err)
		}
		if held, err = held.Add(a.Held); err != nil {
			return Zero, Zero, fmt.Errorf("cannot sum held funds: %w", err)
		}
	}
	return available, held, nil
}

// MarshalJSON encodes the snapshot as an array of accounts.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.Accounts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Accounts)
}

// Query evaluates a JSONPath expression against the JSON form of the snapshot,
// that is an array of objects with properties client, available, held, total
// and locked.
//
// Amounts are seen as JSON numbers by the expression.
func (s Snapshot) Query(expr string) (any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	return v, nil
}
