package wacc

import (
	"fmt"
	"strings"
)

// SecurityKey is the normalized scrip identifier used to join the cost-basis
// and holdings sources. Two records join iff their keys are equal.
type SecurityKey string

// NormalizeKey turns any scalar into a SecurityKey: it is converted to a
// string, trimmed and upper-cased. nil yields the empty key, which is valid
// but never matches anything in a CostBasisIndex.
func NormalizeKey(v any) SecurityKey {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case SecurityKey:
		s = string(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	return SecurityKey(strings.ToUpper(strings.TrimSpace(s)))
}

// IsEmpty reports whether the key is the empty key.
func (k SecurityKey) IsEmpty() bool { return k == "" }

// IsSummary reports whether the key looks like a broker summary line, that
// is it contains marker, case-insensitively. An empty marker never matches.
func (k SecurityKey) IsSummary(marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(string(k), strings.ToUpper(marker))
}

func (k SecurityKey) String() string { return string(k) }
