package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/proc"
)

// EditorArgs returns the arguments that open dir in a new editor window.
func EditorArgs(dir string) []string {
	return []string{"--new-window", dir}
}

// Code opens directories in Visual Studio Code (or any editor accepting
// `--new-window <dir>`).
type Code struct {
	path string
}

// NewCode creates a Code launcher for the executable at path.
func NewCode(path string) *Code {
	return &Code{path: path}
}

// Open launches the editor on dir. The `code` CLI returns once the window
// has been handed to the running editor instance.
func (c *Code) Open(ctx context.Context, dir string) error {
	if _, err := proc.Run(ctx, proc.Command{Path: c.path, Args: EditorArgs(dir)}); err != nil {
		return fmt.Errorf("opening editor: %w", err)
	}
	return nil
}

// DryEditor prints the editor invocation instead of running it.
type DryEditor struct {
	Out      io.Writer
	CodePath string
}

// Open prints the editor command line.
func (d *DryEditor) Open(_ context.Context, dir string) error {
	output.PrintDry(d.Out, output.FormatCommand(d.CodePath, EditorArgs(dir)...))
	return nil
}
