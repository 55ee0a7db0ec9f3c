package tools

import (
	"context"
	"fmt"
	"io"

	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/proc"
)

// RemoteOptions describes the repository to create on the hosting service.
type RemoteOptions struct {
	Private     bool
	Description string
	Homepage    string
}

// CreateArgs returns the hub arguments that create the remote repository.
func CreateArgs(opts RemoteOptions) []string {
	args := []string{"create"}
	if opts.Private {
		args = append(args, "--private")
	}
	return append(args, "-d", opts.Description, "-h", opts.Homepage)
}

// PushArgs returns the hub arguments that push branch and set its upstream.
func PushArgs(branch string) []string {
	return []string{"push", "--set-upstream", "origin", branch}
}

// Hub creates and pushes GitHub repositories through the hub CLI.
type Hub struct {
	path string
}

// NewHub creates a Hub for the executable at path.
func NewHub(path string) *Hub {
	return &Hub{path: path}
}

// CreateRemote runs `hub create` in dir. hub adds the "origin" remote to the
// local repository on success.
func (h *Hub) CreateRemote(ctx context.Context, dir string, opts RemoteOptions) error {
	_, err := proc.Run(ctx, proc.Command{Path: h.path, Args: CreateArgs(opts), Dir: dir})
	if err != nil {
		return fmt.Errorf("creating remote repository: %w", err)
	}
	return nil
}

// Push runs `hub push --set-upstream origin <branch>` in dir.
func (h *Hub) Push(ctx context.Context, dir, branch string) error {
	_, err := proc.Run(ctx, proc.Command{Path: h.path, Args: PushArgs(branch), Dir: dir})
	if err != nil {
		return fmt.Errorf("pushing %s: %w", branch, err)
	}
	return nil
}

// DryHost prints the hub invocations instead of running them.
type DryHost struct {
	Out     io.Writer
	HubPath string
}

// CreateRemote prints the create command line.
func (d *DryHost) CreateRemote(_ context.Context, _ string, opts RemoteOptions) error {
	output.PrintDry(d.Out, output.FormatCommand(d.HubPath, CreateArgs(opts)...))
	return nil
}

// Push prints the push command line.
func (d *DryHost) Push(_ context.Context, _ string, branch string) error {
	output.PrintDry(d.Out, output.FormatCommand(d.HubPath, PushArgs(branch)...))
	return nil
}
