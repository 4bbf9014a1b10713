package wacc

import "iter"

// CostBasisIndex maps each security to its cost-basis record.
// It lives for a single reconciliation pass.
type CostBasisIndex struct {
	entries map[SecurityKey]CostBasis
}

// NewCostBasisIndex indexes rows by their normalized scrip. Rows whose key is
// empty are left out. When a key is repeated the last row wins.
func NewCostBasisIndex(rows []Record, s Schema, num Fallback) *CostBasisIndex {
	idx := &CostBasisIndex{entries: make(map[SecurityKey]CostBasis, len(rows))}
	for _, r := range rows {
		cb := s.ResolveCostBasis(r, num)
		if cb.Key.IsEmpty() {
			continue
		}
		idx.entries[cb.Key] = cb
	}
	return idx
}

// Lookup returns the cost basis of key.
func (idx *CostBasisIndex) Lookup(key SecurityKey) (CostBasis, bool) {
	cb, ok := idx.entries[key]
	return cb, ok
}

// Len returns the number of indexed securities.
func (idx *CostBasisIndex) Len() int { return len(idx.entries) }

// All iterates over the index in no particular order.
func (idx *CostBasisIndex) All() iter.Seq2[SecurityKey, CostBasis] {
	return func(yield func(SecurityKey, CostBasis) bool) {
		for k, cb := range idx.entries {
			if !yield(k, cb) {
				return
			}
		}
	}
}
