package wacc

import "github.com/etnz/wacc/date"

// Report is the complete outcome of an analysis: the reconciled rows, the
// holdings left out, and the totals.
type Report struct {
	On      date.Date
	Rows    []Row
	Skipped []Skipped
	Totals  Totals
}

// Analyze reconciles both sources and aggregates the result.
func Analyze(on date.Date, costBasis, holdings []Record, opts Options) *Report {
	rec := opts.Reconcile(costBasis, holdings)
	return &Report{
		On:      on,
		Rows:    rec.Rows,
		Skipped: rec.Skipped,
		Totals:  Aggregate(rec.Rows),
	}
}

// Headers returns the column names of the first row, which define the
// table layout. It is empty when there is no row.
func (r *Report) Headers() []string {
	if len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0].Keys()
}

// Unmatched returns the keys of the rows without cost basis.
func (r *Report) Unmatched() []SecurityKey {
	var keys []SecurityKey
	for _, row := range r.Rows {
		if !row.Matched() {
			keys = append(keys, row.Key())
		}
	}
	return keys
}

func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.On)
	rows := r.Rows
	if rows == nil {
		rows = []Row{}
	}
	w.Append("rows", rows)
	w.Optional("skipped", r.Skipped)
	w.Append("totals", r.Totals)
	return w.MarshalJSON()
}
