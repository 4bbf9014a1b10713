package wacc

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultSummaryMarker is the text identifying broker summary lines.
const DefaultSummaryMarker = "total"

// Options controls a reconciliation pass. Use DefaultOptions as a starting
// point: the zero value does not drop the trailing summary row.
type Options struct {
	Schema Schema

	// DropTrailingSummaryRow removes the last holdings record unconditionally.
	// Broker exports end with a summary line, set it to false for sources
	// that do not.
	DropTrailingSummaryRow bool

	// SummaryMarker identifies summary lines by content: any holding whose
	// scrip contains it (case-insensitively) is skipped. Defaults to
	// DefaultSummaryMarker.
	SummaryMarker string

	// Fallback resolves unparsable numbers. Defaults to ZeroFallback.
	Fallback Fallback

	// Log receives debug traces of every skipped row and data defect.
	// Defaults to a disabled logger.
	Log *zerolog.Logger
}

// DefaultOptions returns the options matching the usual broker exports.
func DefaultOptions() Options {
	return Options{
		Schema:                 DefaultSchema(),
		DropTrailingSummaryRow: true,
		SummaryMarker:          DefaultSummaryMarker,
		Fallback:               ZeroFallback,
	}
}

func (o Options) withDefaults() Options {
	if o.SummaryMarker == "" {
		o.SummaryMarker = DefaultSummaryMarker
	}
	if o.Fallback == nil {
		o.Fallback = ZeroFallback
	}
	if o.Log == nil {
		nop := zerolog.Nop()
		o.Log = &nop
	}
	return o
}

// SkipReason tells why a holdings record did not make it into the output.
type SkipReason string

const (
	SkipTrailingRow SkipReason = "trailing summary row"
	SkipEmptyScrip  SkipReason = "empty scrip"
	SkipSummaryRow  SkipReason = "summary row"
)

// Skipped describes a holdings record left out of the reconciliation.
type Skipped struct {
	Index  int        `json:"index"` // 1-based position among the holdings records
	Scrip  string     `json:"scrip"`
	Reason SkipReason `json:"reason"`
}

// Reconciliation is the outcome of a reconciliation pass.
type Reconciliation struct {
	Rows    []Row
	Skipped []Skipped
}

// Reconcile joins holdings to their cost basis with DefaultOptions.
func Reconcile(costBasis, holdings []Record) []Row {
	return DefaultOptions().Reconcile(costBasis, holdings).Rows
}

// Reconcile joins every holdings record to its cost-basis record and derives
// the gain metrics.
//
// Holdings whose scrip is empty or looks like a summary line are skipped,
// as is the last holdings record when DropTrailingSummaryRow is set.
// A holding without cost basis is reconciled with a zero WACC rate.
// Output rows keep the order of the holdings records.
func (o Options) Reconcile(costBasis, holdings []Record) *Reconciliation {
	o = o.withDefaults()
	log := o.Log

	num := func(field, raw string, err error) decimal.Decimal {
		d := o.Fallback(field, raw, err)
		log.Debug().Str("field", field).Str("value", raw).Err(err).Str("using", d.String()).Msg("invalid number")
		return d
	}

	index := NewCostBasisIndex(costBasis, o.Schema, num)

	res := &Reconciliation{Rows: make([]Row, 0, len(holdings))}
	candidates := holdings
	var trailing *Skipped
	if o.DropTrailingSummaryRow && len(candidates) > 0 {
		last := len(candidates) - 1
		candidates = candidates[:last]
		scrip := o.Schema.Scrip(holdings[last])
		log.Debug().Int("index", last+1).Str("scrip", scrip).Msg("dropping trailing row")
		trailing = &Skipped{Index: last + 1, Scrip: scrip, Reason: SkipTrailingRow}
	}

	for i, rec := range candidates {
		scrip := o.Schema.Scrip(rec)
		key := NormalizeKey(scrip)
		var reason SkipReason
		switch {
		case key.IsEmpty():
			reason = SkipEmptyScrip
		case key.IsSummary(o.SummaryMarker):
			reason = SkipSummaryRow
		}
		if reason != "" {
			log.Debug().Int("index", i+1).Str("scrip", scrip).Str("reason", string(reason)).Msg("skipping row")
			res.Skipped = append(res.Skipped, Skipped{Index: i + 1, Scrip: scrip, Reason: reason})
			continue
		}

		h := o.Schema.Holding(rec, num)
		cb, matched := index.Lookup(h.Key)
		if !matched {
			log.Debug().Str("scrip", string(h.Key)).Msg("no cost basis, using a zero WACC rate")
		}
		res.Rows = append(res.Rows, newRow(h, matched, computeMetrics(h, cb.Rate), o.Schema.Holdings.ValueAtLTP))
	}
	if trailing != nil {
		res.Skipped = append(res.Skipped, *trailing)
	}

	log.Info().
		Int("holdings", len(holdings)).
		Int("costBasis", index.Len()).
		Int("rows", len(res.Rows)).
		Int("skipped", len(res.Skipped)).
		Msg("reconciled")
	return res
}
