// Package model defines the domain types and value objects for the
// new-project CLI.
//
// This package contains pure data structures with no external dependencies.
// A ProjectRequest is built once per invocation from command-line flags and
// configuration; a ProjectResult is filled in stage by stage while the
// project is materialized and handed back to the caller when the pipeline
// stops.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
