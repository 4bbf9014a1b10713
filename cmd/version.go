package cmd

import (
	"context"
	"flag"
	"fmt"
	"runtime/debug"

	"github.com/google/subcommands"
)

// Version is injected at build time via ldflags.
var Version = "dev"

// FullVersion returns the version, completed by the module version when
// installed with go install.
func FullVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || Version != "dev" || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return info.Main.Version
}

type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print the version" }
func (*versionCmd) Usage() string            { return "wacc version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Println("wacc", FullVersion())
	return subcommands.ExitSuccess
}
