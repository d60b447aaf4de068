package payments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a transaction in the whole input stream.
type TxID uint32

// TxType is a typed string identifying transaction kinds.
type TxType string

// Transaction types, as they appear in the input.
const (
	TypeDeposit    TxType = "deposit"
	TypeWithdrawal TxType = "withdrawal"
	TypeDispute    TxType = "dispute"
	TypeResolve    TxType = "resolve"
	TypeChargeback TxType = "chargeback"
)

// ParseTxType parses a transaction type, ignoring case.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDeposit, TypeWithdrawal, TypeDispute, TypeResolve, TypeChargeback:
		return t, nil
	default:
		return "", &ParseError{Field: "type", Value: s, Err: errUnknownType}
	}
}

// Transaction is the common interface of the five transaction kinds.
//
// The set of kinds is closed: Deposit, Withdrawal, Dispute, Resolve and
// Chargeback.
type Transaction interface {
	What() TxType     // What returns the transaction kind.
	Client() ClientID // Client returns the account the record is addressed to.
	ID() TxID         // ID returns the transaction id, or the referenced one for disputes.
	isTransaction()
}

type baseTx struct {
	ClientID ClientID `json:"client"`
	TxID     TxID     `json:"tx"`
}

func (t baseTx) Client() ClientID { return t.ClientID }
func (t baseTx) ID() TxID         { return t.TxID }
func (baseTx) isTransaction()     {}

// Deposit credits the client available funds.
type Deposit struct {
	baseTx
	Amount Amount
}

// NewDeposit creates a new Deposit transaction.
func NewDeposit(client ClientID, tx TxID, amount Amount) Deposit {
	return Deposit{baseTx: baseTx{ClientID: client, TxID: tx}, Amount: amount}
}

func (Deposit) What() TxType { return TypeDeposit }

// Withdrawal debits the client available funds.
type Withdrawal struct {
	baseTx
	Amount Amount
}

// NewWithdrawal creates a new Withdrawal transaction.
func NewWithdrawal(client ClientID, tx TxID, amount Amount) Withdrawal {
	return Withdrawal{baseTx: baseTx{ClientID: client, TxID: tx}, Amount: amount}
}

func (Withdrawal) What() TxType { return TypeWithdrawal }

// Dispute claims that a previous transaction was erroneous; its funds are held
// until the dispute is resolved or charged back.
type Dispute struct{ baseTx }

// NewDispute creates a dispute of transaction 'tx'.
func NewDispute(client ClientID, tx TxID) Dispute {
	return Dispute{baseTx{ClientID: client, TxID: tx}}
}

func (Dispute) What() TxType { return TypeDispute }

// Resolve closes a dispute in favor of the client: held funds are released.
type Resolve struct{ baseTx }

// NewResolve creates a resolution of the dispute on 'tx'.
func NewResolve(client ClientID, tx TxID) Resolve {
	return Resolve{baseTx{ClientID: client, TxID: tx}}
}

func (Resolve) What() TxType { return TypeResolve }

// Chargeback closes a dispute by reversing the transaction. The account gets
// locked.
type Chargeback struct{ baseTx }

// NewChargeback creates a chargeback of the dispute on 'tx'.
func NewChargeback(client ClientID, tx TxID) Chargeback {
	return Chargeback{baseTx{ClientID: client, TxID: tx}}
}

func (Chargeback) What() TxType { return TypeChargeback }

// AmountOf returns the amount carried by a funding transaction.
func AmountOf(tx Transaction) (Amount, bool) {
	switch v := tx.(type) {
	case Deposit:
		return v.Amount, true
	case Withdrawal:
		return v.Amount, true
	default:
		return Zero, false
	}
}

// newTransaction builds a transaction from raw field values.
//
// The amount is mandatory for funding transactions and ignored otherwise.
func newTransaction(kind, client, tx, amount string) (Transaction, error) {
	t, err := ParseTxType(kind)
	if err != nil {
		return nil, err
	}
	c, err := parseID("client", client, 16)
	if err != nil {
		return nil, err
	}
	id, err := parseID("tx", tx, 32)
	if err != nil {
		return nil, err
	}
	base := baseTx{ClientID: ClientID(c), TxID: TxID(id)}

	switch t {
	case TypeDeposit, TypeWithdrawal:
		a, err := ParseAmount(amount)
		if err != nil {
			return nil, err
		}
		if t == TypeDeposit {
			return Deposit{baseTx: base, Amount: a}, nil
		}
		return Withdrawal{baseTx: base, Amount: a}, nil
	case TypeDispute:
		return Dispute{base}, nil
	case TypeResolve:
		return Resolve{base}, nil
	default:
		return Chargeback{base}, nil
	}
}

func parseID(field, s string, bits int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ParseError{Field: field, Value: s, Err: errMissingValue}
	}
	v, err := strconv.ParseUint(s, 10, bits)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &ParseError{Field: field, Value: s, Err: errOutOfRange}
	}
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Err: errNotANumber}
	}
	return v, nil
}

func (t Deposit) String() string    { return fmt.Sprintf("deposit tx %d client %d %s", t.TxID, t.ClientID, t.Amount) }
func (t Withdrawal) String() string { return fmt.Sprintf("withdrawal tx %d client %d %s", t.TxID, t.ClientID, t.Amount) }
func (t Dispute) String() string    { return fmt.Sprintf("dispute tx %d client %d", t.TxID, t.ClientID) }
func (t Resolve) String() string    { return fmt.Sprintf("resolve tx %d client %d", t.TxID, t.ClientID) }
func (t Chargeback) String() string { return fmt.Sprintf("chargeback tx %d client %d", t.TxID, t.ClientID) }
