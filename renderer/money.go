package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/payments"
)

// ValidateCurrency checks that 'code' is a known ISO 4217 currency code. The
// empty code is valid and means plain amounts.
func ValidateCurrency(code string) error {
	if code == "" {
		return nil
	}
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// formatAmount formats 'a' in the currency 'code', rounded to the currency
// fraction digits. Without a currency the amount keeps its full precision.
func formatAmount(a payments.Amount, code string) string {
	if code == "" {
		return a.String()
	}
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return a.String()
	}
	minor := a.Decimal().Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
