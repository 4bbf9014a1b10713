package wacc

import (
	"iter"
	"slices"
)

// Record is one row of a tabular source: an ordered mapping from column name
// to string value. The zero value is an empty record ready to use.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord builds a record from parallel header and field slices.
// Missing fields are stored as "", extra fields are ignored. When a header
// is repeated, the last value wins but the column keeps its first position.
func NewRecord(header, fields []string) Record {
	r := Record{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for i, h := range header {
		v := ""
		if i < len(fields) {
			v = fields[i]
		}
		r.Set(h, v)
	}
	return r
}

// R is a convenient factory for records, mostly used in tests.
// kv is a list of alternating column names and values.
func R(kv ...string) Record {
	var r Record
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Get returns the value for column key, or "" if the column is absent.
func (r Record) Get(key string) string { return r.values[key] }

// Lookup returns the value for column key and whether the column is present.
func (r Record) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of columns.
func (r Record) Len() int { return len(r.keys) }

// Keys returns a copy of the column names in order.
func (r Record) Keys() []string { return slices.Clone(r.keys) }

// All iterates over columns in order.
func (r Record) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Set sets the value of a column, appending it if it does not exist yet.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := Record{
		keys:   slices.Clone(r.keys),
		values: make(map[string]string, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Equal reports whether both records have the same columns, in the same
// order, with the same values.
func (r Record) Equal(o Record) bool {
	if !slices.Equal(r.keys, o.keys) {
		return false
	}
	for _, k := range r.keys {
		if r.values[k] != o.values[k] {
			return false
		}
	}
	return true
}

// IsBlank reports whether every value of the record is empty.
func (r Record) IsBlank() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// MarshalJSON writes the record as a JSON object preserving column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for k, v := range r.All() {
		w.Append(k, v)
	}
	return w.MarshalJSON()
}
