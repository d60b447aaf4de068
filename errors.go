package payments

import (
	"errors"
	"fmt"
)

// Sentinel errors, to be checked with errors.Is.
//
// ErrParse is fatal: the stream cannot be trusted anymore. All the others
// reject a single record and the run goes on, including ErrArithmetic when a
// record would push a balance out of range.
var (
	ErrParse      = errors.New("malformed record")
	ErrArithmetic = errors.New("amount out of representable range")

	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrInsufficientFunds    = errors.New("insufficient available funds")
	ErrAccountLocked        = errors.New("account is locked")
	ErrUnknownTransaction   = errors.New("unknown transaction")
	ErrNotDisputable        = errors.New("transaction is not disputable")
	ErrInvalidState         = errors.New("invalid dispute state")
	ErrClientMismatch       = errors.New("transaction belongs to another client")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrUnknownAccount       = errors.New("unknown account")
)

// reasons for a ParseError.
var (
	errMissingValue = errors.New("missing value")
	errNotANumber   = errors.New("not a number")
	errTooPrecise   = fmt.Errorf("more than %d fractional digits", Scale)
	errOutOfRange   = errors.New("out of range")
	errUnknownType  = errors.New("unknown transaction type")
)

// ParseError reports an input that cannot be turned into a transaction record.
type ParseError struct {
	Line  int    // Line in the input, 0 if unknown.
	Field string // Field is the column name.
	Value string // Value is the offending raw text.
	Err   error  // Err is the reason.
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// ArithmeticError reports an operation whose result does not fit in an Amount.
type ArithmeticError struct {
	Op   string
	A, B Amount
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.A, e.B, ErrArithmetic)
}

func (e *ArithmeticError) Unwrap() error { return ErrArithmetic }

// DuplicateTransactionError is returned when a funding transaction reuses an id.
type DuplicateTransactionError struct {
	TxID TxID
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("tx %d: %v", e.TxID, ErrDuplicateTransaction)
}

func (e *DuplicateTransactionError) Unwrap() error { return ErrDuplicateTransaction }

// InsufficientFundsError provides details about a refused withdrawal.
type InsufficientFundsError struct {
	ClientID  ClientID
	Available Amount
	Requested Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for client %d: available %s, requested %s",
		e.ClientID, e.Available, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// RecordError is a rejected record: the record has not been applied and the
// ledger is left as it was before it.
type RecordError struct {
	Index    int // Index is the 1-based position of the record in the stream.
	Type     TxType
	TxID     TxID
	ClientID ClientID
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s tx %d for client %d rejected: %v", e.Index, e.Type, e.TxID, e.ClientID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Rule returns a short identifier of the violated rule.
func (e *RecordError) Rule() string { return Rule(e.Err) }

// Rule returns a short, stable identifier for a rejection cause.
func Rule(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate_tx"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_tx"
	case errors.Is(err, ErrNotDisputable):
		return "not_disputable"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, ErrArithmetic):
		return "overflow"
	default:
		return "other"
	}
}

// IsRejection returns true if err only rejects a single record.
func IsRejection(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}

// IsFatal returns true if err must abort the run.
func IsFatal(err error) bool {
	return err != nil && !IsRejection(err)
}
