package contracts

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value in reais. Arithmetic is exact (decimal), rounding
// only happens for display.
type Amount struct {
	value decimal.Decimal
}

func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Amount{value: v}
	case float64:
		return Amount{value: decimal.NewFromFloat(v)}
	case int:
		return Amount{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Amount{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

// ParseAmount parses a Brazilian formatted amount like "120.000,00".
// An empty or blank text is zero.
func ParseAmount(text string) (Amount, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Amount{}, nil
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, &FormatError{Value: text, Err: err}
	}
	return Amount{value: v}, nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(text string) Amount {
	a, err := ParseAmount(text)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// brl formats like "R$ 1.234,56".
var brl = func() *money.Formatter {
	cur := money.GetCurrency(money.BRL)
	return money.NewFormatter(cur.Fraction, cur.Decimal, cur.Thousand, cur.Grapheme, "$ 1")
}()

// String returns the amount rounded to the cent in the Brazilian format.
func (a Amount) String() string {
	return brl.Format(a.Cents())
}

// Cents returns the amount rounded to the cent, in cents.
func (a Amount) Cents() int64 { return a.value.Shift(2).Round(0).IntPart() }

func (a Amount) Decimal() decimal.Decimal  { return a.value }
func (a Amount) IsZero() bool              { return a.value.IsZero() }
func (a Amount) IsPositive() bool          { return a.value.IsPositive() }
func (a Amount) IsNegative() bool          { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool       { return a.value.Equal(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }
func (a Amount) LessThan(b Amount) bool    { return a.value.LessThan(b.value) }
func (a Amount) Add(b Amount) Amount       { return Amount{a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount       { return Amount{a.value.Sub(b.value)} }
func (a Amount) Neg() Amount               { return Amount{a.value.Neg()} }
func (a Amount) Abs() Amount               { return Amount{a.value.Abs()} }
func (a Amount) Times(n int) Amount        { return Amount{a.value.Mul(decimal.NewFromInt(int64(n)))} }
func (a Amount) Div(n int) Amount          { return Amount{a.value.Div(decimal.NewFromInt(int64(n)))} }
func (a Amount) Round(places int32) Amount { return Amount{a.value.Round(places)} }
func (a Amount) InexactFloat64() float64   { return a.value.InexactFloat64() }

// AlmostEqual reports whether a and b differ by at most tol.
func (a Amount) AlmostEqual(b Amount, tol Amount) bool {
	return a.value.Sub(b.value).Abs().LessThanOrEqual(tol.value)
}

// Ratio returns a/b as a percentage, or 0 when b is zero.
func (a Amount) Ratio(b Amount) Percent {
	if b.IsZero() {
		return 0
	}
	return Percent(a.value.Div(b.value).Shift(2).InexactFloat64())
}

// Sum adds up amounts.
func Sum(amounts ...Amount) Amount {
	var s Amount
	for _, a := range amounts {
		s = s.Add(a)
	}
	return s
}

// MarshalJSON writes the amount rounded to the cent as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.StringFixed(2)), nil
}
