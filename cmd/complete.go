package cmd

import (
	"flag"

	"github.com/etnz/wacc/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete the values of flags by name, other flags accept
// anything.
var flagPredictors = map[string]complete.Predictor{
	"config":    predict.Files("*.toml"),
	"wacc":      predict.Files("*"),
	"shares":    predict.Files("*"),
	"log-level": predict.Set{"debug", "info", "warn", "error"},
	"currency":  predict.Set{"NPR", "USD", "EUR", "INR"},
}

// Completion returns the shell completion of the command line, derived from
// the flags of the registered subcommands.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(global),
	}
	for _, cmds := range commands() {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(fs)}
		}
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "readme", "*"))
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
