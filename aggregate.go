package wacc

import "github.com/shopspring/decimal"

// Totals are the column-wise aggregates of a set of rows.
type Totals struct {
	ValueAtLTP           decimal.Decimal
	ValueAtLastClose     decimal.Decimal
	TodaysGain           decimal.Decimal
	CostOfCapital        decimal.Decimal
	Difference           decimal.Decimal
	DifferencePercentage decimal.Decimal // a ratio of the sums, not a sum
}

// Aggregate sums the metrics of rows.
//
// Sums use the two-decimal values stored in each row, so the footer always
// adds up to the body. The difference percentage is computed once from the
// summed difference and cost, and is zero when the summed cost is zero.
func Aggregate(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		m := r.metrics
		t.ValueAtLTP = t.ValueAtLTP.Add(m.ValueAtLTP)
		t.ValueAtLastClose = t.ValueAtLastClose.Add(m.ValueAtLastClose)
		t.TodaysGain = t.TodaysGain.Add(m.TodaysGain)
		t.CostOfCapital = t.CostOfCapital.Add(m.TotalCostOfCapital)
		t.Difference = t.Difference.Add(m.Difference)
	}
	if !t.CostOfCapital.IsZero() {
		t.DifferencePercentage = round2(t.Difference.Div(t.CostOfCapital).Mul(hundred))
	}
	return t
}

// ForColumn returns the formatted total to display under column, if that
// column has a total.
func (t Totals) ForColumn(column string) (string, bool) {
	switch column {
	case ColumnValueAtLTP:
		return fixed2(t.ValueAtLTP), true
	case ColumnValueAtLastClose:
		return fixed2(t.ValueAtLastClose), true
	case ColumnTodaysGain:
		return fixed2(t.TodaysGain), true
	case ColumnTotalCostOfCapital:
		return fixed2(t.CostOfCapital), true
	case ColumnDifference:
		return fixed2(t.Difference), true
	case ColumnDifferencePercentage:
		return fixed2(t.DifferencePercentage), true
	}
	return "", false
}

// MarshalJSON writes every total with exactly two decimals.
func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalValueAsOfLTP", fixed2(t.ValueAtLTP))
	w.Append("totalValueAsOfLastClosing", fixed2(t.ValueAtLastClose))
	w.Append("totalTodaysGain", fixed2(t.TodaysGain))
	w.Append("totalCostOfCapital", fixed2(t.CostOfCapital))
	w.Append("totalDifference", fixed2(t.Difference))
	w.Append("totalDifferencePercentage", fixed2(t.DifferencePercentage))
	return w.MarshalJSON()
}
