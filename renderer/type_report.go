package renderer

import (
	"github.com/etnz/wacc"
)

// Report is the view of a wacc.Report ready to be rendered.
// Every value is already formatted so that it can be stored as json test
// fixtures.
type Report struct {
	Date     string `json:"date"`
	Currency string `json:"currency"`

	ValueAtLTP           string `json:"valueAtLTP"`
	ValueAtLastClose     string `json:"valueAtLastClose"`
	TodaysGain           string `json:"todaysGain"`
	CostOfCapital        string `json:"costOfCapital"`
	Difference           string `json:"difference"`
	DifferencePercentage string `json:"differencePercentage"`

	// Headers are the columns of the first row, in order.
	Headers []string `json:"headers"`
	// Rows holds one cell per header for each reconciled row.
	Rows [][]string `json:"rows"`
	// Footer holds the totals under their column, "" elsewhere.
	Footer []string `json:"footer"`
}

// gainColumns get a visual emphasis on their sign.
var gainColumns = map[string]bool{
	wacc.ColumnTodaysGain:           true,
	wacc.ColumnDifference:           true,
	wacc.ColumnDifferencePercentage: true,
}

// NewReport creates the view of r, amounts are displayed in currency.
func NewReport(r *wacc.Report, currency string) *Report {
	t := r.Totals
	v := &Report{
		Date:                 r.On.String(),
		Currency:             currency,
		ValueAtLTP:           wacc.M(t.ValueAtLTP, currency).String(),
		ValueAtLastClose:     wacc.M(t.ValueAtLastClose, currency).String(),
		TodaysGain:           wacc.M(t.TodaysGain, currency).SignedString(),
		CostOfCapital:        wacc.M(t.CostOfCapital, currency).String(),
		Difference:           wacc.M(t.Difference, currency).SignedString(),
		DifferencePercentage: signedPercent(t.DifferencePercentage.StringFixed(2)),
		Rows:                 make([][]string, 0, len(r.Rows)),
	}

	headers := r.Headers()
	for _, h := range headers {
		v.Headers = append(v.Headers, escape(h))
	}

	for _, row := range r.Rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = cell(h, row.Get(h))
		}
		v.Rows = append(v.Rows, cells)
	}

	if len(headers) > 0 {
		v.Footer = make([]string, len(headers))
		for i, h := range headers {
			if total, ok := t.ForColumn(h); ok {
				v.Footer[i] = cell(h, total)
			}
		}
		if v.Footer[0] == "" {
			v.Footer[0] = "**Total**"
		}
	}
	return v
}

// cell formats the value of column h.
func cell(h, value string) string {
	if !gainColumns[h] {
		return escape(value)
	}
	if h == wacc.ColumnDifferencePercentage {
		return emphasize(value, "%")
	}
	return emphasize(value, "")
}
