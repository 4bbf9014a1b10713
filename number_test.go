package wacc

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"10", "10"},
		{"  12.5  ", "12.5"},
		{"12.5 NPR", "12.5"},
		{"-3", "-3"},
		{"+7", "7"},
		{".5", "0.5"},
		{"-.5", "-0.5"},
		{"5.", "5"},
		{"1e3", "1000"},
		{"1.5E-2", "0.015"},
		{"2e", "2"},
		{"2e+", "2"},
		{"1,234", "1"},
		{"\u00a012", "12"},
		{"\ufeff3", "3"},
		{15, "15"},
		{int64(-4), "-4"},
		{2.25, "2.25"},
		{decimal.RequireFromString("9.99"), "9.99"},
	}
	for _, tc := range tests {
		got, err := ParseNumber(tc.in)
		require.NoError(t, err, "ParseNumber(%#v)", tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "ParseNumber(%#v) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestParseNumber_Errors(t *testing.T) {
	for _, in := range []any{nil, "", "   ", "abc", "N/A", "-", ".", "e5", "1e999", math.NaN(), math.Inf(1)} {
		_, err := ParseNumber(in)
		require.Error(t, err, "ParseNumber(%#v)", in)
		assert.True(t, errors.Is(err, ErrNotANumber), "error should wrap ErrNotANumber")
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "error should be a *ParseError")
	}
}

func TestCoerce(t *testing.T) {
	assert.True(t, Coerce("abc").IsZero())
	assert.True(t, Coerce(nil).IsZero())
	assert.True(t, Coerce("").IsZero())
	assert.True(t, decimal.NewFromInt(42).Equal(Coerce(" 42 ")))
	assert.True(t, decimal.RequireFromString("-85.00").Equal(Coerce("-85.00")))
}

func TestFixed2(t *testing.T) {
	assert.Equal(t, "0.00", fixed2(decimal.Zero))
	assert.Equal(t, "1000.00", fixed2(decimal.NewFromInt(1000)))
	assert.Equal(t, "0.01", fixed2(round2(decimal.RequireFromString("0.005"))))
	assert.Equal(t, "-0.33", fixed2(round2(decimal.RequireFromString("-0.333"))))
}
