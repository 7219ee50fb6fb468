package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already at scale", in: "10.50", want: "10.50"},
		{name: "half rounds up", in: "10.505", want: "10.51"},
		{name: "half rounds away from zero when negative", in: "-10.505", want: "-10.51"},
		{name: "below half rounds down", in: "10.504", want: "10.50"},
		{name: "above half rounds up", in: "10.506", want: "10.51"},
		{name: "integer gains two places", in: "7", want: "7.00"},
		{name: "zero", in: "0", want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoney(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestNewMoney_RoundingIsIdempotent(t *testing.T) {
	m, err := domain.MoneyFromString("10.505")
	require.NoError(t, err)

	again, err := domain.NewMoney(m.Decimal())
	require.NoError(t, err)
	assert.True(t, m.Equal(again))
	assert.Equal(t, "10.51", again.String())
}

func TestNewMoney_Bounds(t *testing.T) {
	max, err := domain.MoneyFromString("9999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", max.String())

	_, err = domain.MoneyFromString("10000000000.00")
	assert.ErrorIs(t, err, apperrors.ErrAmountRange)

	_, err = domain.MoneyFromString("-10000000000.00")
	assert.ErrorIs(t, err, apperrors.ErrAmountRange)

	min, err := domain.MoneyFromString("-9999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "-9999999999.99", min.String())
}

func TestMoneyFromString_Invalid(t *testing.T) {
	_, err := domain.MoneyFromString("not-a-number")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMoney_ArithmeticStaysAtScale(t *testing.T) {
	a := domain.MustMoney("10.01")
	b := domain.MustMoney("0.02")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "10.03", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "9.99", diff.String())

	product, err := a.Mul(decimal.RequireFromString("0.333"))
	require.NoError(t, err)
	assert.Equal(t, "3.33", product.String())
}

func TestMoney_AddOverflow(t *testing.T) {
	a := domain.MustMoney("9999999999.99")
	_, err := a.Add(domain.MustMoney("0.01"))
	assert.ErrorIs(t, err, apperrors.ErrAmountRange)
}

func TestInterestOverDays_SingleFinalRounding(t *testing.T) {
	// 1000.00 * 18.99 * 31 / 36500 = 16.128493..., rounded once at the end.
	got, err := domain.InterestOverDays(
		domain.MustMoney("1000.00"),
		decimal.RequireFromString("18.99"),
		31,
	)
	require.NoError(t, err)
	assert.Equal(t, "16.13", got.String())
}

func TestInterestOverDays_ZeroDays(t *testing.T) {
	got, err := domain.InterestOverDays(
		domain.MustMoney("1000.00"),
		decimal.RequireFromString("18.99"),
		0,
	)
	require.NoError(t, err)
	assert.Equal(t, "0.00", got.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := domain.MustMoney("1234.50")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"1234.50"`, string(data))

	var back domain.Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(back))
}

func TestMoney_UnmarshalRejectsOutOfRange(t *testing.T) {
	var m domain.Money
	err := json.Unmarshal([]byte(`"99999999999.00"`), &m)
	assert.ErrorIs(t, err, apperrors.ErrAmountRange)
}

func TestMoney_ZeroValue(t *testing.T) {
	var m domain.Money
	assert.Equal(t, "0.00", m.String())
	assert.Equal(t, 0, m.Sign())
	assert.False(t, m.IsNegative())
}
