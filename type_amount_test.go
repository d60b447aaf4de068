package payments

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "1", want: "1.0000"},
		{in: "1.5", want: "1.5000"},
		{in: "  2.0001 ", want: "2.0001"},
		{in: "0.0000", want: "0.0000"},
		{in: "1.50000", want: "1.5000"},
		{in: "-3.25", want: "-3.2500"},
		{in: "922337203685477.5807", want: "922337203685477.5807"},
		{in: "", wantErr: errMissingValue},
		{in: "abc", wantErr: errNotANumber},
		{in: "1.2.3", wantErr: errNotANumber},
		{in: "1.00001", wantErr: errTooPrecise},
		{in: "922337203685477.5808", wantErr: errOutOfRange},
		{in: "1e30", wantErr: errNotANumber},
		{in: "1e3", wantErr: errNotANumber},
		{in: "1E3", wantErr: errNotANumber},
		{in: "1e100000000", wantErr: errNotANumber},
		{in: "1e-100000000", wantErr: errNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("ParseAmount(%q) error = %v, want it to be a parse error", tt.in, err)
				}
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Field != "amount" {
					t.Errorf("ParseAmount(%q) error = %#v, want *ParseError on field amount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	a, b := MustParseAmount("10.5"), MustParseAmount("0.25")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if want := MustParseAmount("10.75"); !sum.Equal(want) {
		t.Errorf("Add() = %s, want %s", sum, want)
	}

	diff, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub() unexpected error: %v", err)
	}
	if want := MustParseAmount("-10.25"); !diff.Equal(want) {
		t.Errorf("Sub() = %s, want %s", diff, want)
	}

	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Errorf("Cmp() is inconsistent for %s and %s", a, b)
	}
	if !b.LessThan(a) || !a.GreaterThanOrEqual(a) {
		t.Errorf("LessThan() or GreaterThanOrEqual() is inconsistent for %s and %s", a, b)
	}
	if !Zero.IsZero() || Zero.IsPositive() || Zero.IsNegative() {
		t.Errorf("Zero = %s is not zero", Zero)
	}
	if A(3).String() != "3.0000" {
		t.Errorf("A(3) = %s, want 3.0000", A(3))
	}
}

func TestAmount_Overflow(t *testing.T) {
	max := MustParseAmount("922337203685477.5807")
	unit := MustParseAmount("0.0001")

	if _, err := max.Add(unit); !errors.Is(err, ErrArithmetic) {
		t.Errorf("max.Add(0.0001) error = %v, want %v", err, ErrArithmetic)
	}
	if _, err := max.Neg().Sub(unit); !errors.Is(err, ErrArithmetic) {
		t.Errorf("-max.Sub(0.0001) error = %v, want %v", err, ErrArithmetic)
	}
	if got, err := max.Sub(unit); err != nil || got.String() != "922337203685477.5806" {
		t.Errorf("max.Sub(0.0001) = %s, %v, want 922337203685477.5806", got, err)
	}
}

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(MustParseAmount("12.3"))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != "12.3000" {
		t.Errorf("Marshal() = %s, want 12.3000", data)
	}

	for _, in := range []string{`12.3`, `"12.3"`} {
		var a Amount
		if err := json.Unmarshal([]byte(in), &a); err != nil {
			t.Fatalf("Unmarshal(%s) unexpected error: %v", in, err)
		}
		if !a.Equal(MustParseAmount("12.3")) {
			t.Errorf("Unmarshal(%s) = %s, want 12.3000", in, a)
		}
	}

	var a Amount
	if err := json.Unmarshal([]byte(`"1.00001"`), &a); !errors.Is(err, ErrParse) {
		t.Errorf("Unmarshal(\"1.00001\") error = %v, want %v", err, ErrParse)
	}
}
