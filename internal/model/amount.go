package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a decimal money value.
//
// It marshals to a bare JSON number, not the quoted string shopspring's
// Decimal produces, so blobs stay readable by older clients that stored JS
// numbers. Scale is preserved: 5.50 round-trips as 5.50, not 5.5.
// Unmarshal accepts both numbers and quoted strings.
//
// Constructors and Unmarshal return the canonical form: the value parsed
// from the amount's own JSON text. The zero Amount, decimal.Zero and 1e3
// therefore compare deep-equal to what an export of them reads back as.
type Amount struct {
	decimal.Decimal
}

// NewAmount returns an integral amount.
func NewAmount(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}.canonical()
}

// AmountOf wraps an existing decimal.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{d}.canonical()
}

// ParseAmount parses a decimal string such as "1000" or "-12.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d}.canonical(), nil
}

// MustAmount is ParseAmount for constants and tests. Panics on bad input.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// text is the amount's JSON form: fractional digits kept, never an exponent.
func (a Amount) text() string {
	if exp := a.Exponent(); exp < 0 {
		return a.StringFixed(-exp)
	}
	return a.StringFixed(0)
}

func (a Amount) canonical() Amount {
	d, err := decimal.NewFromString(a.text())
	if err != nil {
		return a
	}
	return Amount{d}
}

// MarshalJSON writes the amount as a JSON number with its scale intact.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.text()), nil
}

// UnmarshalJSON accepts 12.5 and "12.5" alike.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if err := a.Decimal.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("unmarshal amount: %w", err)
	}
	*a = a.canonical()
	return nil
}
