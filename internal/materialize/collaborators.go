package materialize

import (
	"context"

	"github.com/shinji-kodama/new-project/internal/npmname"
	"github.com/shinji-kodama/new-project/internal/tools"
	"github.com/shinji-kodama/new-project/internal/upgrade"
)

// NameValidator decides whether a project name can be used.
// *npmname.Validator satisfies it.
type NameValidator interface {
	Check(ctx context.Context, name string, skip bool) (npmname.Verdict, error)
}

// Fetcher copies the tree of a template repository into dest.
// *vcs.Cloner satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, owner, template, dest string) error
}

// VCS manages the new project's repository. *vcs.Git satisfies it.
type VCS interface {
	Init(ctx context.Context, dir string) error
	AddAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	IsDirty(ctx context.Context, dir string) (bool, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// PackageManager installs dependencies. *pkgmgr.NPM satisfies it.
type PackageManager interface {
	Install(ctx context.Context, dir string) error
}

// Upgrader bumps the dependency ranges in a manifest file.
// *upgrade.Upgrader satisfies it.
type Upgrader interface {
	Upgrade(ctx context.Context, manifestPath string) (*upgrade.Report, error)
}

// Host publishes the repository. *tools.Hub and *tools.DryHost satisfy it.
type Host interface {
	CreateRemote(ctx context.Context, dir string, opts tools.RemoteOptions) error
	Push(ctx context.Context, dir, branch string) error
}

// Editor opens the project. *tools.Code and *tools.DryEditor satisfy it.
type Editor interface {
	Open(ctx context.Context, dir string) error
}

// URLOpener opens a URL. *tools.SystemOpener and *tools.DryOpener satisfy it.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// Collaborators bundles every external dependency of a run.
type Collaborators struct {
	Names    NameValidator
	Fetcher  Fetcher
	VCS      VCS
	Packages PackageManager
	Upgrader Upgrader
	Host     Host
	Editor   Editor
	Opener   URLOpener
}
