package wacc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber is wrapped by every ParseError.
var ErrNotANumber = errors.New("not a number")

// ParseError reports a value that could not be read as a number.
type ParseError struct {
	Value  string // the raw value, as found in the source
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as a number: %s", e.Value, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrNotANumber }

// maxExponent bounds the exponent part so that every parsed value stays a
// reasonable finite number.
const maxExponent = 308

// ParseNumber reads v as a decimal number.
//
// Strings are read like a lenient float parser: leading whitespace is
// skipped and the longest prefix forming a number (sign, digits, fraction,
// exponent) is used, so "12.5 NPR" reads as 12.5. Strings without such a
// prefix, empty strings, nil and non-finite floats are reported as a
// *ParseError.
func ParseNumber(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, &ParseError{Value: "", Reason: "absent"}
	case decimal.Decimal:
		return x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float32:
		return parseFloat(float64(x))
	case float64:
		return parseFloat(x)
	case string:
		return parseString(x)
	case fmt.Stringer:
		return parseString(x.String())
	default:
		return parseString(fmt.Sprint(x))
	}
}

func parseFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ParseError{Value: fmt.Sprint(f), Reason: "not finite"}
	}
	return decimal.NewFromFloat(f), nil
}

func parseString(s string) (decimal.Decimal, error) {
	prefix, ok := numericPrefix(s)
	if !ok {
		reason := "no leading number"
		if strings.TrimSpace(s) == "" {
			reason = "empty"
		}
		return decimal.Zero, &ParseError{Value: s, Reason: reason}
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero, &ParseError{Value: s, Reason: err.Error()}
	}
	return d, nil
}

// numericPrefix extracts the longest numeric prefix of s in a canonical form
// accepted by decimal.NewFromString.
func numericPrefix(s string) (string, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f\u00a0\ufeff")
	i := 0
	sign := ""
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = "-"
		}
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[start:i]

	fracPart := ""
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracPart = s[i+1 : j]
		if intPart != "" || fracPart != "" {
			i = j
		}
	}
	if intPart == "" && fracPart == "" {
		return "", false
	}

	exp := ""
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		expSign := ""
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			if s[j] == '-' {
				expSign = "-"
			}
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// an exponent marker with no digit is not part of the number.
		if k > j {
			digits := strings.TrimLeft(s[j:k], "0")
			if len(digits) > 3 || (digits != "" && atoi(digits) > maxExponent) {
				return "", false
			}
			if digits == "" {
				digits = "0"
			}
			exp = "e" + expSign + digits
		}
	}

	if intPart == "" {
		intPart = "0"
	}
	out := sign + intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	return out + exp, true
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func atoi(digits string) int {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n
}

// Fallback decides which number to use when a field cannot be parsed.
// field is the logical field name (e.g. "quantity"), raw the source value.
type Fallback func(field, raw string, err error) decimal.Decimal

// ZeroFallback resolves every defect to exactly zero.
func ZeroFallback(string, string, error) decimal.Decimal { return decimal.Zero }

// Coerce reads v as a number, resolving every failure to zero.
func Coerce(v any) decimal.Decimal {
	d, err := ParseNumber(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// round2 is the storage precision of every computed value.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// fixed2 formats d with exactly two decimals.
func fixed2(d decimal.Decimal) string { return d.StringFixed(2) }
