package domain

import (
	"fmt"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every monetary value carries.
// It matches the PIC S9(10)V99 fields of the legacy card records.
const MoneyScale = 2

// maxMoney bounds the magnitude of any monetary value: 12 total digits, 2 of
// them fractional. Values beyond this would silently truncate on the legacy
// side, so they are rejected here instead.
var maxMoney = decimal.RequireFromString("9999999999.99")

// daysPerYearTimes100 is the combined divisor of the day-count interest
// formula: principal * rate / 100 / 365 * days, collapsed into a single
// division so the result is rounded exactly once.
var daysPerYearTimes100 = decimal.NewFromInt(36500)

// Money is a fixed-scale decimal value. Every operation re-applies the legacy
// rounding rule (two fractional digits, halves away from zero) before
// returning, so unrounded intermediates never cross a call boundary.
//
// The zero value is 0.00.
type Money struct {
	value decimal.Decimal
}

// NewMoney rounds a raw decimal to MoneyScale and range-checks the result.
func NewMoney(d decimal.Decimal) (Money, error) {
	rounded := d.Round(MoneyScale)
	if rounded.Abs().GreaterThan(maxMoney) {
		return Money{}, fmt.Errorf("%w: %s exceeds the representable magnitude %s", apperrors.ErrAmountRange, rounded.String(), maxMoney.String())
	}
	return Money{value: rounded}, nil
}

// MoneyFromString parses a decimal string and scales it like NewMoney.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrValidation, s)
	}
	return NewMoney(d)
}

// MustMoney is MoneyFromString for literals in tests and configuration
// defaults. It panics on invalid input.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{}
}

// Add returns m + o, re-rounded and range-checked.
func (m Money) Add(o Money) (Money, error) {
	return NewMoney(m.value.Add(o.value))
}

// Sub returns m - o, re-rounded and range-checked.
func (m Money) Sub(o Money) (Money, error) {
	return NewMoney(m.value.Sub(o.value))
}

// Mul returns m * factor, re-rounded and range-checked.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	return NewMoney(m.value.Mul(factor))
}

// InterestOverDays computes principal * (annualRatePercent/100) / 365 * days,
// rounding only the final result. This reproduces the legacy day-count
// accrual, which carries the full intermediate precision and rounds once.
// The divisor is a constant; a zero divisor cannot occur, and decimal division
// by zero panics by contract (a caller bug, never a recoverable condition).
func InterestOverDays(principal Money, annualRatePercent decimal.Decimal, days int) (Money, error) {
	raw := principal.value.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysPerYearTimes100)
	return NewMoney(raw)
}

// Decimal exposes the underlying value for persistence adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// Sign returns -1, 0 or 1.
func (m Money) Sign() int {
	return m.value.Sign()
}

// IsNegative reports whether m < 0.00.
func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

// Equal reports numeric equality.
func (m Money) Equal(o Money) bool {
	return m.value.Equal(o.value)
}

// GreaterThan reports m > o.
func (m Money) GreaterThan(o Money) bool {
	return m.value.GreaterThan(o.value)
}

// LessThan reports m < o.
func (m Money) LessThan(o Money) bool {
	return m.value.LessThan(o.value)
}

// String renders the value with exactly two fractional digits.
func (m Money) String() string {
	return m.value.StringFixed(MoneyScale)
}

// MarshalJSON renders the value as a quoted 2-dp decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted or bare decimal and applies scale and bounds.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s is not a valid amount", apperrors.ErrValidation, string(data))
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
