package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/shinji-kodama/new-project/internal/proc"
)

// Git provides repository operations by invoking the git CLI.
type Git struct {
	// path is the git executable. Defaults to "git" looked up in PATH.
	path string
}

// NewGit creates a Git client. An empty path selects "git" from PATH.
func NewGit(path string) *Git {
	if path == "" {
		path = "git"
	}
	return &Git{path: path}
}

// Init creates an empty repository in dir.
func (g *Git) Init(ctx context.Context, dir string) error {
	_, err := g.run(ctx, dir, "init")
	return err
}

// AddAll stages every change in the working tree, including deletions and
// untracked files.
func (g *Git) AddAll(ctx context.Context, dir string) error {
	_, err := g.run(ctx, dir, "add", "--all")
	return err
}

// Commit records the staged changes with the given message.
//
// The message is passed with -m, so multi-line messages keep their line
// breaks (git treats the first line as the subject).
func (g *Git) Commit(ctx context.Context, dir, message string) error {
	_, err := g.run(ctx, dir, "commit", "-m", message)
	return err
}

// IsDirty reports whether the working tree differs from the last commit.
//
// `git status --porcelain` prints one line per changed or untracked path and
// nothing at all for a clean tree, so any output means dirty.
func (g *Git) IsDirty(ctx context.Context, dir string) (bool, error) {
	output, err := g.run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// CurrentBranch returns the name of the currently checked-out branch.
//
// Uses `git rev-parse --abbrev-ref HEAD` which returns the short branch name
// (e.g., "main" instead of "refs/heads/main"). The branch name depends on the
// operator's init.defaultBranch setting, which is why it is queried rather
// than assumed.
func (g *Git) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := g.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// run executes a git command with the given arguments.
//
// When dir is set it is passed to git via the -C flag, which causes git to
// change to that directory before doing anything else. This avoids changing
// the process's working directory.
func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := args
	if dir != "" {
		fullArgs = append([]string{"-C", dir}, args...)
	}

	out, err := proc.Run(ctx, proc.Command{Path: g.path, Args: fullArgs})
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}
