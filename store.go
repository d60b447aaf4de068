package payments

import (
	"maps"
	"slices"
)

// DisputeState is the position of a disputable transaction in the dispute
// life-cycle.
type DisputeState int

const (
	StateNone DisputeState = iota
	StateDisputed
	StateResolved
	StateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateDisputed:
		return "disputed"
	case StateResolved:
		return "resolved"
	case StateChargedBack:
		return "charged-back"
	default:
		return "unknown"
	}
}

// Disputable is a funding transaction retained by the store because it can be
// disputed later on.
type Disputable struct {
	TxID     TxID
	ClientID ClientID
	Kind     TxType // Kind is TypeDeposit, or TypeWithdrawal when withdrawals are disputable.
	Amount   Amount
	State    DisputeState
}

// Store owns the accounts and the disputable transactions of a single run.
//
// A Store is not safe for concurrent use: it is meant to be owned by one
// Processor.
type Store struct {
	accounts   map[ClientID]*Account
	disputable map[TxID]*Disputable
	funding    map[TxID]struct{} // ids of all committed deposits and withdrawals
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[ClientID]*Account),
		disputable: make(map[TxID]*Disputable),
		funding:    make(map[TxID]struct{}),
	}
}

// Account returns the account of 'client', if it exists.
func (s *Store) Account(client ClientID) (*Account, bool) {
	a, ok := s.accounts[client]
	return a, ok
}

// GetOrCreateAccount returns the account of 'client', creating an empty one if
// it does not exist yet.
func (s *Store) GetOrCreateAccount(client ClientID) *Account {
	a, ok := s.accounts[client]
	if !ok {
		a = NewAccount(client)
		s.accounts[client] = a
	}
	return a
}

// Used returns true if 'tx' is already the id of a committed deposit or
// withdrawal.
func (s *Store) Used(tx TxID) bool {
	_, ok := s.funding[tx]
	return ok
}

// RecordDeposit registers a deposit as disputable, with state StateNone.
func (s *Store) RecordDeposit(tx TxID, client ClientID, amount Amount) error {
	return s.record(tx, client, TypeDeposit, amount, true)
}

// RecordWithdrawal registers the id of a withdrawal. The withdrawal is kept
// as disputable only if 'disputable' is true.
func (s *Store) RecordWithdrawal(tx TxID, client ClientID, amount Amount, disputable bool) error {
	return s.record(tx, client, TypeWithdrawal, amount, disputable)
}

func (s *Store) record(tx TxID, client ClientID, kind TxType, amount Amount, disputable bool) error {
	if s.Used(tx) {
		return &DuplicateTransactionError{TxID: tx}
	}
	s.funding[tx] = struct{}{}
	if disputable {
		s.disputable[tx] = &Disputable{TxID: tx, ClientID: client, Kind: kind, Amount: amount}
	}
	return nil
}

// LookupDisputable returns the disputable transaction 'tx', if any.
func (s *Store) LookupDisputable(tx TxID) (*Disputable, bool) {
	d, ok := s.disputable[tx]
	return d, ok
}

// Len returns the number of accounts.
func (s *Store) Len() int { return len(s.accounts) }

// Snapshot returns a copy of all accounts, sorted by client id.
func (s *Store) Snapshot() Snapshot {
	ids := slices.Sorted(maps.Keys(s.accounts))
	accounts := make([]Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, *s.accounts[id])
	}
	return Snapshot{Accounts: accounts}
}
