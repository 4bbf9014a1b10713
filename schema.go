package wacc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Columns lists the alternative names of a single logical field.
// When reading a record, the first alias holding a non-empty value wins.
type Columns []string

// first returns the first non-empty value among the aliases.
func (c Columns) first(r Record) string {
	for _, name := range c {
		if v := r.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// HoldingColumns maps the logical fields of the holdings ("Share Value")
// source to its column names.
type HoldingColumns struct {
	Scrip            Columns
	Quantity         Columns
	LastTradedPrice  Columns
	LastClosingPrice Columns
	// ValueAtLTP is the column after which Today's Gain is inserted.
	ValueAtLTP string
}

// CostBasisColumns maps the logical fields of the cost-basis ("WACC")
// source to its column names.
type CostBasisColumns struct {
	Scrip Columns
	Rate  Columns
}

// Schema resolves the column names of both sources into fixed shapes, so
// that the reconciliation never probes alternative column names itself.
type Schema struct {
	Holdings  HoldingColumns
	CostBasis CostBasisColumns
}

// DefaultSchema returns the column names of the usual broker exports.
func DefaultSchema() Schema {
	return Schema{
		Holdings: HoldingColumns{
			Scrip:            Columns{"Scrip", "Scrip Name"},
			Quantity:         Columns{"Current Balance"},
			LastTradedPrice:  Columns{"Last Transaction Price (LTP)", "LTP"},
			LastClosingPrice: Columns{"Last Closing Price"},
			ValueAtLTP:       ColumnValueAtLTP,
		},
		CostBasis: CostBasisColumns{
			Scrip: Columns{"Scrip Name"},
			Rate:  Columns{"WACC Rate"},
		},
	}
}

// Validate checks that every logical field has at least one column name.
func (s Schema) Validate() error {
	var errs []error
	check := func(name string, c Columns) {
		if len(c) == 0 {
			errs = append(errs, fmt.Errorf("no column configured for %s", name))
		}
	}
	check("holdings scrip", s.Holdings.Scrip)
	check("holdings quantity", s.Holdings.Quantity)
	check("holdings last traded price", s.Holdings.LastTradedPrice)
	check("holdings last closing price", s.Holdings.LastClosingPrice)
	check("cost basis scrip", s.CostBasis.Scrip)
	check("cost basis rate", s.CostBasis.Rate)
	return errors.Join(errs...)
}

// Holding is a holdings record resolved into its logical fields.
type Holding struct {
	Scrip            string // raw scrip value, as found in the source
	Key              SecurityKey
	Quantity         decimal.Decimal
	LastTradedPrice  decimal.Decimal
	LastClosingPrice decimal.Decimal
	Record           Record
}

// CostBasis is a cost-basis record resolved into its logical fields.
type CostBasis struct {
	Key    SecurityKey
	Rate   decimal.Decimal
	Record Record
}

// Scrip returns the raw scrip identifier of a holdings record.
func (s Schema) Scrip(r Record) string { return s.Holdings.Scrip.first(r) }

// Holding resolves a holdings record. Numeric defects are resolved by num.
func (s Schema) Holding(r Record, num Fallback) Holding {
	scrip := s.Scrip(r)
	return Holding{
		Scrip:            scrip,
		Key:              NormalizeKey(scrip),
		Quantity:         number(num, "quantity", s.Holdings.Quantity.first(r)),
		LastTradedPrice:  number(num, "last traded price", s.Holdings.LastTradedPrice.first(r)),
		LastClosingPrice: number(num, "last closing price", s.Holdings.LastClosingPrice.first(r)),
		Record:           r,
	}
}

// ResolveCostBasis resolves a cost-basis record. Numeric defects are resolved by num.
func (s Schema) ResolveCostBasis(r Record, num Fallback) CostBasis {
	return CostBasis{
		Key:    NormalizeKey(s.CostBasis.Scrip.first(r)),
		Rate:   number(num, "WACC rate", s.CostBasis.Rate.first(r)),
		Record: r,
	}
}

func number(num Fallback, field, raw string) decimal.Decimal {
	d, err := ParseNumber(raw)
	if err != nil {
		if num == nil {
			return decimal.Zero
		}
		return num(field, raw, err)
	}
	return d
}
