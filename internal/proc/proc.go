// Package proc runs external programs for the pipeline stages.
//
// Every collaborator binary (git, npm, hub, the editor) is invoked through
// Run so that they share one failure shape: a *CommandError naming the
// command line and carrying its trimmed stderr.
package proc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// was killed. npm and git spawn children that can keep them open.
const waitDelay = 10 * time.Second

// Command describes one invocation.
type Command struct {
	// Path is the executable, either absolute or looked up in PATH.
	Path string

	// Args are the arguments after the executable name.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=VALUE pairs appended to the current environment.
	// Later entries win, so these override inherited values.
	Env []string
}

// String returns the command line as it would be typed.
func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// CommandError reports a command that could not be started or exited
// non-zero.
type CommandError struct {
	// Command is the failed invocation.
	Command Command

	// Stderr is the trimmed standard error output, if any.
	Stderr string

	// Err is the underlying exec error.
	Err error
}

// Error implements the error interface for CommandError.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Command)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run executes cmd and returns its standard output.
//
// The process is killed when ctx is done; the returned error then wraps
// the context error as well so callers can tell a timeout from a failure.
func Run(ctx context.Context, cmd Command) (string, error) {
	if cmd.Path == "" {
		return "", &CommandError{Command: cmd, Err: fmt.Errorf("no executable configured")}
	}

	// #nosec G204 -- the executable and arguments come from flags and
	// configuration of the operator running the tool.
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr strings.Builder
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return "", &CommandError{
			Command: cmd,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
