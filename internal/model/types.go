// Package model defines the domain types for the new-project CLI.
//
// All entities in this package are transient: they live for the duration of
// one invocation. The only persisted state is the materialized project
// directory itself.
package model

import (
	"fmt"
	"strings"
)

// Status is the terminal outcome of one materialization run.
// Every status except StatusOK maps to a non-zero exit code and means the
// pipeline stopped at the stage that produced it.
type Status string

const (
	// StatusOK indicates every stage completed.
	StatusOK Status = "ok"

	// StatusEmptyName indicates the project name was empty or blank.
	StatusEmptyName Status = "emptyName"

	// StatusInvalidNpmName indicates the name violates npm naming rules.
	StatusInvalidNpmName Status = "invalidNpmName"

	// StatusAlreadyExistsOnNpm indicates a package of that name is already
	// published on the registry.
	StatusAlreadyExistsOnNpm Status = "alreadyExistsOnNpm"

	// StatusDirAlreadyExists indicates the target directory was present
	// before the run started. Nothing was written in that case.
	StatusDirAlreadyExists Status = "dirAlreadyExists"

	// StatusCouldNotClone indicates the target directory did not exist after
	// the template fetch, whatever the fetch itself reported.
	StatusCouldNotClone Status = "couldNotClone"

	// StatusUnknownError is the catch-all for any collaborator failure that
	// is not one of the named outcomes above.
	StatusUnknownError Status = "unknownError"
)

// String returns the string representation of Status.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and logging.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the Status value is one of the predefined outcomes.
func (s Status) IsValid() bool {
	switch s {
	case StatusOK, StatusEmptyName, StatusInvalidNpmName, StatusAlreadyExistsOnNpm,
		StatusDirAlreadyExists, StatusCouldNotClone, StatusUnknownError:
		return true
	default:
		return false
	}
}

// ExitCode returns the process exit code that corresponds to the status:
// ExitSuccess for StatusOK, ExitGeneralError for everything else.
func (s Status) ExitCode() ExitCode {
	if s == StatusOK {
		return ExitSuccess
	}
	return ExitGeneralError
}

// ParseStatus converts a string to a Status.
// Unlike the enum itself, parsing is case-insensitive so that values read
// from logs or scripts ("OK", "EmptyName") round-trip.
func ParseStatus(s string) (Status, error) {
	for _, candidate := range []Status{
		StatusOK, StatusEmptyName, StatusInvalidNpmName, StatusAlreadyExistsOnNpm,
		StatusDirAlreadyExists, StatusCouldNotClone, StatusUnknownError,
	} {
		if strings.EqualFold(string(candidate), s) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// ProjectRequest is the input of one materialization run. It is constructed
// once from flags and configuration and never mutated afterwards.
type ProjectRequest struct {
	// Name is the npm package name and the directory name of the new project.
	Name string `json:"name"`

	// Description is the explicit package/repository description. When empty,
	// the configured description template is rendered instead.
	Description string `json:"description,omitempty"`

	// Owner is the GitHub account that owns both the template and the new
	// repository.
	Owner string `json:"owner"`

	// Template is the name of the template repository under Owner.
	Template string `json:"template"`

	// ProjectsFolder is the parent directory of the new project. It may be
	// relative; the materializer resolves it to an absolute path.
	ProjectsFolder string `json:"projectsFolder"`

	// InitialVersion is written to the manifest's version field.
	InitialVersion string `json:"initialVersion"`

	// SkipNameCheck disables npm naming rules and the registry lookup.
	SkipNameCheck bool `json:"skipNameCheck"`

	// PrivateRepo creates the GitHub repository as private.
	PrivateRepo bool `json:"privateRepo"`

	// Dry prints the publishing and editor commands instead of running them.
	Dry bool `json:"dry"`

	// HubPath, NpmPath and CodePath are the external binaries used for
	// repository hosting, dependency installation and editing.
	HubPath  string `json:"hubPath"`
	NpmPath  string `json:"npmPath"`
	CodePath string `json:"codePath"`
}

// CloneID returns the "owner/template" identifier of the template repository.
func (r *ProjectRequest) CloneID() string {
	return r.Owner + "/" + r.Template
}

// ProjectResult is the outcome of one materialization run. The materializer
// creates it before the first stage and updates it as stages complete.
type ProjectResult struct {
	// Status is the terminal outcome.
	Status Status `json:"status"`

	// ExitCode is ExitSuccess iff Status is StatusOK.
	ExitCode ExitCode `json:"exitCode"`

	// ProjectsFolder is the absolute parent directory.
	ProjectsFolder string `json:"projectsFolder"`

	// ProjectDir is the absolute path of the materialized project.
	ProjectDir string `json:"projectDir"`

	// CreatedDir is true once the clone stage has verified that ProjectDir
	// exists. Cleanup only ever removes directories with CreatedDir set.
	CreatedDir bool `json:"createdDir"`
}

// SetStatus records a terminal status together with its exit code, keeping
// the two fields consistent.
func (r *ProjectResult) SetStatus(status Status) {
	r.Status = status
	r.ExitCode = status.ExitCode()
}

// ExitCode defines standard CLI exit codes.
// The materialization pipeline only distinguishes success from failure;
// the specific reason is reported through Status.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates any failure, including every non-ok Status
	// and command-line or configuration errors.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
