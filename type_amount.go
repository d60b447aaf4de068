package payments

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by an Amount.
const Scale = 4

var (
	// maxAmount is the largest magnitude an Amount can hold: the range of a
	// signed 64 bits integer counted in ten-thousandths.
	maxAmount = decimal.New(math.MaxInt64, -Scale)
	minAmount = maxAmount.Neg()
)

// Amount is a fixed-point monetary value with Scale fractional digits.
//
// The zero value is a valid zero amount.
type Amount struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// ParseAmount parses the textual decimal representation of an amount.
//
// Only plain decimal notation is accepted, exponents are not.
// It fails with a *ParseError if the text is not a number, carries more than
// Scale significant fractional digits, or exceeds the representable range.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, &ParseError{Field: "amount", Value: s, Err: errMissingValue}
	}
	if strings.ContainsAny(s, "eE") {
		return Zero, &ParseError{Field: "amount", Value: s, Err: errNotANumber}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, &ParseError{Field: "amount", Value: s, Err: errNotANumber}
	}
	if !d.Equal(d.Truncate(Scale)) {
		return Zero, &ParseError{Field: "amount", Value: s, Err: errTooPrecise}
	}
	if !inRange(d) {
		return Zero, &ParseError{Field: "amount", Value: s, Err: errOutOfRange}
	}
	return Amount{value: d}, nil
}

// MustParseAmount is like ParseAmount but panics on error. Meant for tests and
// constants.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// A is a convenient factory for whole amounts.
func A(units int64) Amount {
	d := decimal.NewFromInt(units)
	if !inRange(d) {
		panic("amount out of range")
	}
	return Amount{value: d}
}

func inRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(minAmount) && d.LessThanOrEqual(maxAmount)
}

// Add returns a+b, or an *ArithmeticError if the result is not representable.
func (a Amount) Add(b Amount) (Amount, error) {
	r := a.value.Add(b.value)
	if !inRange(r) {
		return a, &ArithmeticError{Op: "add", A: a, B: b}
	}
	return Amount{value: r}, nil
}

// Sub returns a-b, or an *ArithmeticError if the result is not representable.
func (a Amount) Sub(b Amount) (Amount, error) {
	r := a.value.Sub(b.value)
	if !inRange(r) {
		return a, &ArithmeticError{Op: "sub", A: a, B: b}
	}
	return Amount{value: r}, nil
}

// Neg returns -a. The range is symmetric so it cannot overflow.
func (a Amount) Neg() Amount { return Amount{value: a.value.Neg()} }

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int { return a.value.Cmp(b.value) }

func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }

// Decimal returns the amount as a decimal.Decimal.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// String returns the canonical text of the amount, always with Scale
// fractional digits.
func (a Amount) String() string { return a.value.StringFixed(Scale) }

// MarshalJSON writes the amount as a JSON number with Scale fractional digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a JSON string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
