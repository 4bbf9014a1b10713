package wacc

import "github.com/shopspring/decimal"

// Column names written or read by the reconciliation.
const (
	ColumnValueAtLTP           = "Value as of LTP"
	ColumnValueAtLastClose     = "Value as of Last Closing Price"
	ColumnTodaysGain           = "Today's Gain"
	ColumnWACCRate             = "WACC Rate"
	ColumnTotalCostOfCapital   = "Total Cost of Capital"
	ColumnDifference           = "Difference"
	ColumnDifferencePercentage = "Difference Percentage"
)

// Metrics are the values derived for a single holding. Every value is
// stored rounded to two decimals, exactly as written in the row columns.
type Metrics struct {
	ValueAtLTP           decimal.Decimal `json:"valueAsOfLTP"`
	ValueAtLastClose     decimal.Decimal `json:"valueAsOfLastClosing"`
	TodaysGain           decimal.Decimal `json:"todaysGain"`
	WACCRate             decimal.Decimal `json:"waccRate"`
	TotalCostOfCapital   decimal.Decimal `json:"totalCostOfCapital"`
	Difference           decimal.Decimal `json:"difference"`
	DifferencePercentage decimal.Decimal `json:"differencePercentage"`
}

// computeMetrics derives the metrics of h given its cost-basis rate.
// Derived values are computed on exact inputs and rounded once.
func computeMetrics(h Holding, rate decimal.Decimal) Metrics {
	valueAtLTP := h.Quantity.Mul(h.LastTradedPrice)
	valueAtLastClose := h.Quantity.Mul(h.LastClosingPrice)
	cost := h.Quantity.Mul(rate)
	difference := valueAtLTP.Sub(cost)

	m := Metrics{
		ValueAtLTP:         round2(valueAtLTP),
		ValueAtLastClose:   round2(valueAtLastClose),
		TodaysGain:         round2(valueAtLTP.Sub(valueAtLastClose)),
		WACCRate:           round2(rate),
		TotalCostOfCapital: round2(cost),
		Difference:         round2(difference),
	}
	// zero only when the exact cost is zero, a sub-cent cost still counts.
	if !cost.IsZero() {
		m.DifferencePercentage = round2(difference.Div(cost).Mul(hundred))
	}
	return m
}

var hundred = decimal.NewFromInt(100)

// Row is a holding enriched with its derived metrics. It is immutable.
type Row struct {
	key     SecurityKey
	matched bool
	record  Record
	metrics Metrics
}

// newRow builds the output row: the holding columns in their original order,
// Today's Gain right after anchor (or appended when anchor is absent), then
// the other derived columns.
func newRow(h Holding, matched bool, m Metrics, anchor string) Row {
	var r Record
	inserted := false
	for k, v := range h.Record.All() {
		r.Set(k, v)
		if anchor != "" && k == anchor {
			r.Set(ColumnTodaysGain, fixed2(m.TodaysGain))
			inserted = true
		}
	}
	if !inserted {
		r.Set(ColumnTodaysGain, fixed2(m.TodaysGain))
	}
	r.Set(ColumnWACCRate, fixed2(m.WACCRate))
	r.Set(ColumnTotalCostOfCapital, fixed2(m.TotalCostOfCapital))
	r.Set(ColumnDifference, fixed2(m.Difference))
	r.Set(ColumnDifferencePercentage, fixed2(m.DifferencePercentage))
	return Row{key: h.Key, matched: matched, record: r, metrics: m}
}

// Key returns the normalized scrip of the row.
func (r Row) Key() SecurityKey { return r.key }

// Matched reports whether a cost-basis record was found for the row.
func (r Row) Matched() bool { return r.matched }

// Metrics returns the derived values of the row.
func (r Row) Metrics() Metrics { return r.metrics }

// Get returns the value of a column.
func (r Row) Get(column string) string { return r.record.Get(column) }

// Keys returns the column names in order.
func (r Row) Keys() []string { return r.record.Keys() }

// Record returns a copy of the row columns.
func (r Row) Record() Record { return r.record.Clone() }

// Equal reports whether both rows hold the same columns and metrics.
func (r Row) Equal(o Row) bool {
	return r.key == o.key && r.matched == o.matched && r.record.Equal(o.record)
}

// MarshalJSON writes the row columns, in order.
func (r Row) MarshalJSON() ([]byte, error) { return r.record.MarshalJSON() }
