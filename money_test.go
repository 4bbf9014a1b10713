package wacc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		value, currency, want, signed string
	}{
		{"150", "USD", "$150.00", "+$150.00"},
		{"1000", "USD", "$1,000.00", "+$1,000.00"},
		{"-850", "USD", "-$850.00", "-$850.00"},
		{"0", "USD", "$0.00", "-"},
		{"10.005", "USD", "$10.01", "+$10.01"},
	}
	for _, tc := range tests {
		m := M(dec(tc.value), tc.currency)
		assert.Equal(t, tc.want, m.String(), "M(%s, %s).String()", tc.value, tc.currency)
		assert.Equal(t, tc.signed, m.SignedString(), "M(%s, %s).SignedString()", tc.value, tc.currency)
	}
}

func TestMoney_Predicates(t *testing.T) {
	m := M(dec("-1"), DefaultCurrency)
	assert.True(t, m.IsNegative())
	assert.False(t, m.IsPositive())
	assert.False(t, m.IsZero())
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.True(t, m.Equal(M(dec("-1.00"), DefaultCurrency)))
	assert.False(t, m.Equal(M(dec("-1"), "USD")))
}

func TestValidCurrency(t *testing.T) {
	assert.NoError(t, ValidCurrency("NPR"))
	assert.NoError(t, ValidCurrency("USD"))
	assert.Error(t, ValidCurrency("XXXX"))
	assert.Error(t, ValidCurrency(""))
}

func TestMoney_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(M(dec("1.5"), "USD"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD","amount":"1.50"}`, string(data))
}
