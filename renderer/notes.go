package renderer

import (
	"io"
	"strconv"
	"strings"

	"github.com/etnz/wacc"
	md "github.com/nao1215/markdown"
)

// SkippedMarkdown lists the holdings left out of the report.
// It is empty when nothing was skipped.
func SkippedMarkdown(r *wacc.Report) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.H2("Skipped rows")

		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"#", "Scrip", "Reason"},
		}
		for _, s := range r.Skipped {
			table.Rows = append(table.Rows, []string{strconv.Itoa(s.Index), escape(s.Scrip), string(s.Reason)})
		}
		doc.Table(table)
		return len(r.Skipped) > 0 && doc.Build() == nil
	})
	return b.String()
}

// UnmatchedMarkdown lists the securities held without cost basis.
// It is empty when every holding was matched.
func UnmatchedMarkdown(r *wacc.Report) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		unmatched := r.Unmatched()
		scrips := make([]string, 0, len(unmatched))
		for _, k := range unmatched {
			scrips = append(scrips, k.String())
		}

		doc := md.NewMarkdown(w)
		doc.H2("Without cost basis")
		doc.BulletList(scrips...)
		return len(scrips) > 0 && doc.Build() == nil
	})
	return b.String()
}
