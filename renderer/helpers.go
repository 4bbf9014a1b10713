package renderer

import (
	"bytes"
	"io"
	"strings"

	"github.com/etnz/wacc"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// escape makes value safe to use in a markdown table cell.
func escape(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.ReplaceAll(value, "\n", " ")
}

// emphasize highlights a signed value: positive values are bold with a
// leading "+", negative values are bold, zero is left as is.
func emphasize(value, suffix string) string {
	d := wacc.Coerce(value)
	switch {
	case d.IsPositive():
		return "**+" + escape(value) + suffix + "**"
	case d.IsNegative():
		return "**" + escape(value) + suffix + "**"
	}
	return escape(value) + suffix
}

// signedPercent formats a two-decimal percentage with its sign, zero as "-".
func signedPercent(value string) string {
	d := wacc.Coerce(value)
	switch {
	case d.IsPositive():
		return "+" + value + "%"
	case d.IsNegative():
		return value + "%"
	}
	return "-"
}
