// Package core provides the money and date arithmetic the summary engine
// is built on.
//
// Money is held as an integer count of miliunits (1/1000 of the currency's
// major unit) so that summing many transactions never drifts. Floats appear
// only at the display boundary and in the dimensionless percent-change
// metric.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount in miliunits.
type Money struct {
	Miliunits int64
}

var miliunitsPerUnit = decimal.NewFromInt(1000)

// FromDisplay converts a major-unit amount to Money, rounding half away
// from zero on the fourth decimal place.
//
// Examples:
//
//	FromDisplay(12.345) -> Money{12345}
//	FromDisplay(-1.0)   -> Money{-1000}
func FromDisplay(v float64) Money {
	m := decimal.NewFromFloat(v).Mul(miliunitsPerUnit).Round(0)
	return Money{Miliunits: m.IntPart()}
}

// Display returns the major-unit value as a float64 for presentation only.
// Never feed the result back into arithmetic; use miliunits for that.
func (m Money) Display() float64 {
	f, _ := decimal.NewFromInt(m.Miliunits).Div(miliunitsPerUnit).Float64()
	return f
}

// ParseAmount converts a signed decimal string to Money. It accepts both
// dot (12.34) and comma (12,34) separators and rounds half away from zero
// beyond the third decimal place.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{Miliunits: d.Mul(miliunitsPerUnit).Round(0).IntPart()}, nil
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{Miliunits: m.Miliunits + other.Miliunits}
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	if m.Miliunits < 0 {
		return Money{Miliunits: -m.Miliunits}
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Miliunits == 0
}

func (m Money) String() string {
	return strconv.FormatInt(m.Miliunits, 10)
}

// MarshalJSON emits the raw miliunit integer; the presentation layer is the
// only place that divides by 1000.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Miliunits, 10)), nil
}

// UnmarshalJSON accepts a raw miliunit integer.
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Miliunits = v
	return nil
}
