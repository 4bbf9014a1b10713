package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/wacc"
	"github.com/etnz/wacc/date"
	"github.com/etnz/wacc/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// sources are the flags shared by the commands reading both files.
type sources struct {
	costBasis string
	holdings  string
	date      string
	keepLast  bool
}

func (s *sources) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.costBasis, "wacc", "", "Cost basis file (CSV or XLSX) with the WACC rate of each scrip")
	f.StringVar(&s.holdings, "shares", "", "Holdings file (CSV or XLSX) with the share value of each scrip")
	f.StringVar(&s.date, "d", "", "Date of the report (defaults to today)")
	f.BoolVar(&s.keepLast, "keep-last", false, "Keep the last holdings row, for exports without a trailing summary row")
}

// analyze loads both sources and reconciles them.
func (s *sources) analyze(ctx context.Context, cfg *Config, log *zerolog.Logger) (*wacc.Report, error) {
	on, err := date.Parse(s.date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if log != nil {
		ctx = log.WithContext(ctx)
	}
	costBasis, holdings, err := wacc.LoadSources(ctx, s.costBasis, s.holdings)
	if errors.Is(err, wacc.ErrMissingSource) {
		return nil, fmt.Errorf("please select both WACC and Share Value files: %w", err)
	}
	if err != nil {
		return nil, err
	}

	opts := cfg.Options(log)
	if s.keepLast {
		opts.DropTrailingSummaryRow = false
	}
	return wacc.Analyze(on, costBasis, holdings, opts), nil
}

type analyzeCmd struct {
	sources
	json    bool
	query   string
	skipped bool
	watch   int
}

func (*analyzeCmd) Name() string { return "analyze" }
func (*analyzeCmd) Synopsis() string {
	return "reconcile holdings with their cost basis and display the gains"
}
func (*analyzeCmd) Usage() string {
	return `wacc analyze -wacc <file> -shares <file> [-d <date>] [-keep-last] [-json] [-q <jsonpath>] [-skipped] [-w n]

  Reconciles the holdings export with the WACC export and displays, for each
  scrip, today's gain, the total cost of capital and the difference with the
  current value, followed by the totals.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
	f.StringVar(&c.query, "q", "", "Print the result of a JSONPath query on the JSON report, e.g. '$.totals.totalDifference'")
	f.BoolVar(&c.skipped, "skipped", false, "Also list the holdings rows left out of the report")
	f.IntVar(&c.watch, "w", 0, "run every n seconds")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for {
		r, err := c.analyze(ctx, cfg, log)
		if err == nil {
			err = c.render(r, cfg.Currency)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			// a missing file is a usage error, watching cannot fix it.
			if errors.Is(err, wacc.ErrMissingSource) {
				return subcommands.ExitUsageError
			}
			if c.watch <= 0 {
				return subcommands.ExitFailure
			}
		}

		if c.watch <= 0 {
			break
		}
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(time.Duration(c.watch) * time.Second):
		}
	}
	return subcommands.ExitSuccess
}

func (c *analyzeCmd) render(r *wacc.Report, currency string) error {
	switch {
	case c.query != "":
		v, err := queryReport(r, c.query)
		if err != nil {
			return err
		}
		return printJSON(v)
	case c.json:
		return printJSON(r)
	}

	if c.watch > 0 {
		fmt.Println("\033[2J")
	}
	printMarkdown(reportMarkdown(r, currency, c.skipped))
	return nil
}

// reportMarkdown renders r with its notes, one blank line between sections.
func reportMarkdown(r *wacc.Report, currency string, skipped bool) string {
	sections := []string{
		renderer.RenderReport(renderer.NewReport(r, currency)),
		renderer.UnmatchedMarkdown(r),
	}
	if skipped {
		sections = append(sections, renderer.SkippedMarkdown(r))
	}

	var b strings.Builder
	for _, md := range sections {
		if md = strings.TrimRight(md, "\n"); md == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(md)
	}
	b.WriteString("\n")
	return b.String()
}

// queryReport evaluates a JSONPath expression on the JSON form of r.
func queryReport(r *wacc.Report, path string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return v, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
