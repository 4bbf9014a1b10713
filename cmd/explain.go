package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/wacc/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd is the subcommand for the AI assistant.
type explainCmd struct {
	sources
	model string
}

func (*explainCmd) Name() string { return "explain" }
func (*explainCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about the report"
}
func (*explainCmd) Usage() string {
	return `wacc explain -wacc <file> -shares <file> [-d <date>] [-keep-last] [-model <model>] [question...]

  Reconciles both files and starts a chat session with Gemini about the
  result. The question, if any, is asked first. Type 'bye' to exit.

  The Gemini client reads its API key from GEMINI_API_KEY, which can be set
  in a .env file.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	c.sources.SetFlags(f)
	f.StringVar(&c.model, "model", "", "Gemini model, overrides the configuration")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, log, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	model := cfg.Explain.Model
	if c.model != "" {
		model = c.model
	}

	r, err := c.analyze(ctx, cfg, log)
	if err != nil {
		return fail(err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(r, cfg.Currency, model)
	trader := agent.NewTrader(model)
	analyst.Log, trader.Log = log, log
	a := agent.New(os.Stdout, os.Stdin, model, analyst, trader)
	a.Print = printMarkdown

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
