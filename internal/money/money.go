// Package money holds monetary amounts as integer cents.
//
// Amounts are parsed and formatted through shopspring/decimal so that values
// cross the API boundary with exactly two fraction digits, while sums and
// averages are computed on cents without floating-point drift.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// MaxCents bounds a single amount (100 billion in major units). Totals are
// accumulated with Add, which saturates instead of wrapping.
const MaxCents = int64(10_000_000_000_000)

var hundred = decimal.NewFromInt(100)

// Amount is a monetary value in cents.
type Amount int64

func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Parse reads a decimal string such as "12.34" and rounds it to cents
// (half away from zero). Non-numeric and out-of-range input is rejected.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.Abs().GreaterThan(decimal.NewFromInt(MaxCents)) {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return Amount(cents.IntPart()), nil
}

func (a Amount) Cents() int64 {
	return int64(a)
}

func (a Amount) IsPositive() bool {
	return a > 0
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Average divides a by n and rounds to the nearest cent. It returns zero when
// n is not positive.
func (a Amount) Average(n int) Amount {
	if n <= 0 {
		return 0
	}
	avg := decimal.NewFromInt(int64(a)).DivRound(decimal.NewFromInt(int64(n)), 0)
	return Amount(avg.IntPart())
}

// MarshalJSON writes the amount as a JSON number with two fraction digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Add returns a+b, clamped to the int64 range on overflow.
func (a Amount) Add(b Amount) Amount {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return Amount(math.MaxInt64)
	case b < 0 && sum > a:
		return Amount(math.MinInt64)
	}
	return sum
}
