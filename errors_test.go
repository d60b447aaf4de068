package payments

import (
	"errors"
	"fmt"
	"testing"
)

func TestRule(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&DuplicateTransactionError{TxID: 1}, "duplicate_tx"},
		{&InsufficientFundsError{ClientID: 1}, "insufficient_funds"},
		{ErrAccountLocked, "account_locked"},
		{fmt.Errorf("tx 3: %w", ErrUnknownTransaction), "unknown_tx"},
		{ErrNotDisputable, "not_disputable"},
		{ErrInvalidState, "invalid_state"},
		{ErrClientMismatch, "client_mismatch"},
		{ErrInvalidAmount, "invalid_amount"},
		{ErrUnknownAccount, "unknown_account"},
		{&ArithmeticError{Op: "add"}, "overflow"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Rule(tt.err); got != tt.want {
				t.Errorf("Rule(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := error(&ParseError{Line: 3, Field: "amount", Value: "x", Err: errNotANumber})
	if want := `line 3: invalid amount "x": not a number`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrParse) || !errors.Is(err, errNotANumber) {
		t.Errorf("%v does not wrap both ErrParse and its reason", err)
	}
	if !IsFatal(err) || IsRejection(err) {
		t.Errorf("%v is not fatal", err)
	}
}

func TestRecordError(t *testing.T) {
	err := error(&RecordError{Index: 2, Type: TypeWithdrawal, TxID: 5, ClientID: 1, Err: &InsufficientFundsError{ClientID: 1, Available: A(1), Requested: A(2)}})
	want := "record 2: withdrawal tx 5 for client 1 rejected: insufficient funds for client 1: available 1.0000, requested 2.0000"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("%v does not wrap %v", err, ErrInsufficientFunds)
	}
	wrapped := fmt.Errorf("processing: %w", err)
	if !IsRejection(wrapped) || IsFatal(wrapped) {
		t.Errorf("%v is not a rejection", wrapped)
	}
	if IsFatal(nil) {
		t.Error("IsFatal(nil) = true")
	}
}
