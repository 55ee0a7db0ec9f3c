// Package main is the entry point for the new-project CLI.
//
// This binary creates a new npm project from a template repository. It
// delegates all functionality to the internal/cli package, which defines
// the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown"
// respectively.
package main

import (
	"github.com/shinji-kodama/new-project/internal/cli"
)

// version, commit, and date are set at build time via ldflags
// (-X main.version=...). They provide binary identification for the
// --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
