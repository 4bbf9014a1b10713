// Package cmd implements the CLI application to reconcile holdings with
// their cost basis.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// commands lists the subcommands by group.
func commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"reports": {&analyzeCmd{}, &explainCmd{}},
		"help":    {&topicCmd{}, &versionCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the TOML configuration file (default $"+EnvConfig+" or "+DefaultConfigFile+")")
var currency = flag.String("currency", "", "Currency used to display amounts, overrides the configuration")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the configuration")

// setup loads the environment and the configuration, applies the global
// flags, and builds the logger.
func setup() (*Config, *zerolog.Logger, error) {
	// .env is optional, and never overrides the actual environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("cannot load .env: %w", err)
	}

	path := configPath()
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := NewLogger(cfg.LogLevel, os.Stderr)
	log.Debug().Str("config", path).Str("currency", cfg.Currency).Msg("configuration loaded")
	return cfg, &log, nil
}

// configPath is the -config flag, else $WACC_CONFIG, else the default file.
// It reads the environment at call time, after .env is loaded.
func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	return envOr(EnvConfig, DefaultConfigFile)
}

func envOr(key, value string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return value
}

// printMarkdown renders md for the terminal, or prints it as is when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
