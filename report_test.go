package wacc

import (
	"encoding/json"
	"testing"

	"github.com/etnz/wacc/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	costBasis, holdings := sample()
	r := Analyze(date.New(2026, 10, 16), costBasis, holdings, DefaultOptions())

	require.Len(t, r.Rows, 1)
	assert.Equal(t, r.Rows[0].Keys(), r.Headers())
	assert.Empty(t, r.Unmatched())
	assert.Equal(t, []Skipped{{Index: 2, Scrip: "TOTAL", Reason: SkipTrailingRow}}, r.Skipped)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"date": "2026-10-16",
		"rows": [{
			"Scrip": "ABC",
			"Current Balance": "10",
			"LTP": "15",
			"Last Closing Price": "14",
			"Today's Gain": "10.00",
			"WACC Rate": "100.00",
			"Total Cost of Capital": "1000.00",
			"Difference": "-850.00",
			"Difference Percentage": "-85.00"
		}],
		"skipped": [{"index": 2, "scrip": "TOTAL", "reason": "trailing summary row"}],
		"totals": {
			"totalValueAsOfLTP": "150.00",
			"totalValueAsOfLastClosing": "140.00",
			"totalTodaysGain": "10.00",
			"totalCostOfCapital": "1000.00",
			"totalDifference": "-850.00",
			"totalDifferencePercentage": "-85.00"
		}
	}`, string(data))
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(date.New(2026, 10, 16), nil, nil, DefaultOptions())
	assert.Empty(t, r.Headers())

	data, err := json.Marshal(r)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []any{}, got["rows"], "rows is an empty list, not null")
	assert.NotContains(t, got, "skipped")
}

func TestReport_Unmatched(t *testing.T) {
	costBasis, holdings := sample()
	holdings = append([]Record{R("Scrip", " xyz", "Current Balance", "1")}, holdings...)
	r := Analyze(date.New(2026, 10, 16), costBasis, holdings, DefaultOptions())
	assert.Equal(t, []SecurityKey{"XYZ"}, r.Unmatched())
}
