package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/wacc/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
	raw  bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `wacc topic [-list] [-raw] [<topic>...]

  Show the documentation of the given topics, '*' for all of them. Without
  topic, show the index.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "Print the topic names, one per line")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		if err := listTopics(os.Stdout); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.raw {
		fmt.Print(doc)
	} else {
		printMarkdown(doc)
	}
	return subcommands.ExitSuccess
}

// listTopics writes the name of every topic, the index excluded.
func listTopics(w io.Writer) error {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.Join(topics, "\n"))
	return err
}
