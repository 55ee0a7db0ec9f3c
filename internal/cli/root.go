// Package cli implements the cobra-based command line of new-project.
//
// The tool has a single command, `new-project <projectName>`, defined in
// create.go. This file holds the root command construction, global flags and
// the translation of errors into process exit codes.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/new-project/internal/model"
)

// Global flag variables.
var (
	// verbose enables debug logging with timestamps and caller information.
	verbose bool

	// configFile overrides the default config file location.
	configFile string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &createFlags{}

	rootCmd := &cobra.Command{
		Use:   "new-project <projectName>",
		Short: "Create a new npm project from a template repository",
		Long: `new-project creates a new npm project based on an existing template repository.

It clones <owner>/<template>, replaces every spelling of the template name with
the project name, sets the package description and version, creates a git
history, installs and upgrades dependencies, publishes the repository with hub
and opens it in the editor.

Settings are read from $XDG_CONFIG_HOME/new-project/config.yaml (created with
defaults on first use) and NEW_PROJECT_* environment variables.

Examples:
  new-project my-lib
  new-project --template cli-boilerplate --description "A tiny CLI" my-cli
  new-project --dry my-lib`,

		// Args validates that exactly one positional argument (the project
		// name) is provided.
		Args: cobra.ExactArgs(1),

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/new-project/config.yaml)")
	registerCreateFlags(rootCmd, flags)

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// A finished run has already logged its result.
	var resErr *resultError
	if !errors.As(err, &resErr) {
		printError(err)
	}
	os.Exit(int(ExitCode(err)))
}

// ExitCode maps an error returned by the command to the process exit code.
// CLIError and failed runs carry their own codes; other errors default to
// exit code 1.
func ExitCode(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}

	var resErr *resultError
	if errors.As(err, &resErr) {
		return resErr.result.ExitCode
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}

// printError writes "Error: <message>" to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}

// resultError reports a run that ended with a status other than ok.
type resultError struct {
	result *model.ProjectResult
}

func (e *resultError) Error() string {
	return fmt.Sprintf("project creation ended with status %s", e.result.Status)
}
