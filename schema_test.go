package wacc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Holding(t *testing.T) {
	s := DefaultSchema()

	t.Run("primary columns", func(t *testing.T) {
		h := s.Holding(R("Scrip", " abc ", "Current Balance", "10", "Last Transaction Price (LTP)", "15", "Last Closing Price", "14"), ZeroFallback)
		assert.Equal(t, " abc ", h.Scrip)
		assert.Equal(t, SecurityKey("ABC"), h.Key)
		assert.True(t, decimal.NewFromInt(10).Equal(h.Quantity))
		assert.True(t, decimal.NewFromInt(15).Equal(h.LastTradedPrice))
		assert.True(t, decimal.NewFromInt(14).Equal(h.LastClosingPrice))
	})

	t.Run("aliases", func(t *testing.T) {
		h := s.Holding(R("Scrip Name", "XYZ", "Current Balance", "1", "LTP", "7"), ZeroFallback)
		assert.Equal(t, SecurityKey("XYZ"), h.Key)
		assert.True(t, decimal.NewFromInt(7).Equal(h.LastTradedPrice))
	})

	t.Run("empty primary falls back to alias", func(t *testing.T) {
		h := s.Holding(R("Last Transaction Price (LTP)", "", "LTP", "8"), ZeroFallback)
		assert.True(t, decimal.NewFromInt(8).Equal(h.LastTradedPrice))
	})

	t.Run("fallback receives defects", func(t *testing.T) {
		var fields []string
		num := func(field, raw string, err error) decimal.Decimal {
			assert.ErrorIs(t, err, ErrNotANumber)
			fields = append(fields, field)
			return decimal.NewFromInt(-1)
		}
		h := s.Holding(R("Scrip", "ABC", "Current Balance", "n/a", "LTP", "15"), num)
		assert.Equal(t, []string{"quantity", "last closing price"}, fields)
		assert.True(t, decimal.NewFromInt(-1).Equal(h.Quantity))
		assert.True(t, decimal.NewFromInt(-1).Equal(h.LastClosingPrice))
	})

	t.Run("nil fallback is zero", func(t *testing.T) {
		h := s.Holding(R("Scrip", "ABC", "Current Balance", "n/a"), nil)
		assert.True(t, h.Quantity.IsZero())
	})
}

func TestSchema_CostBasis(t *testing.T) {
	cb := DefaultSchema().ResolveCostBasis(R("Scrip Name", "abc", "WACC Rate", "100.5"), ZeroFallback)
	assert.Equal(t, SecurityKey("ABC"), cb.Key)
	assert.True(t, decimal.RequireFromString("100.5").Equal(cb.Rate))
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, DefaultSchema().Validate())

	s := DefaultSchema()
	s.Holdings.Quantity = nil
	s.CostBasis.Rate = Columns{}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holdings quantity")
	assert.Contains(t, err.Error(), "cost basis rate")
}

func TestCostBasisIndex(t *testing.T) {
	rows := []Record{
		R("Scrip Name", "abc", "WACC Rate", "100"),
		R("Scrip Name", "", "WACC Rate", "5"),
		R("Scrip Name", "XYZ", "WACC Rate", "20"),
		R("Scrip Name", " Abc", "WACC Rate", "110"),
	}
	idx := NewCostBasisIndex(rows, DefaultSchema(), ZeroFallback)
	assert.Equal(t, 2, idx.Len(), "empty keys are left out")

	cb, ok := idx.Lookup("ABC")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(110).Equal(cb.Rate), "last row wins")

	_, ok = idx.Lookup("")
	assert.False(t, ok, "the empty key never matches")

	seen := map[SecurityKey]bool{}
	for k := range idx.All() {
		seen[k] = true
	}
	assert.Equal(t, map[SecurityKey]bool{"ABC": true, "XYZ": true}, seen)
}
