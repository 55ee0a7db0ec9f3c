package cli

import (
	"io"

	"github.com/shinji-kodama/new-project/internal/config"
	"github.com/shinji-kodama/new-project/internal/materialize"
	"github.com/shinji-kodama/new-project/internal/model"
	"github.com/shinji-kodama/new-project/internal/npmname"
	"github.com/shinji-kodama/new-project/internal/pkgmgr"
	"github.com/shinji-kodama/new-project/internal/registry"
	"github.com/shinji-kodama/new-project/internal/tools"
	"github.com/shinji-kodama/new-project/internal/upgrade"
	"github.com/shinji-kodama/new-project/internal/vcs"
)

// newCollaborators wires the production collaborators for req. With req.Dry
// the outward-facing ones (hosting, editor, URL opener) only print what they
// would do to out.
func newCollaborators(cfg *config.Config, req model.ProjectRequest, out io.Writer) materialize.Collaborators {
	reg := registry.NewClient(cfg.RegistryURL, registry.WithUserAgent("new-project/"+Version))
	git := vcs.NewGit("")

	c := materialize.Collaborators{
		Names:    npmname.NewValidator(reg),
		Fetcher:  vcs.NewCloner(git, cfg.CloneBaseURL),
		VCS:      git,
		Packages: pkgmgr.NewNPM(req.NpmPath),
		Upgrader: upgrade.NewUpgrader(reg),
	}

	if req.Dry {
		c.Host = &tools.DryHost{Out: out, HubPath: req.HubPath}
		c.Editor = &tools.DryEditor{Out: out, CodePath: req.CodePath}
		c.Opener = &tools.DryOpener{Out: out}
		return c
	}

	c.Host = tools.NewHub(req.HubPath)
	c.Editor = tools.NewCode(req.CodePath)
	c.Opener = tools.NewSystemOpener()
	return c
}

func templatesFrom(cfg *config.Config) materialize.Templates {
	return materialize.Templates{
		Readme:                        cfg.Readme,
		Description:                   cfg.Description,
		InitialCommitMessage:          cfg.InitialCommitMessage,
		LockfileCreationCommitMessage: cfg.LockfileCreationCommitMessage,
		UpgradeCommitMessage:          cfg.UpgradeCommitMessage,
		Homepage:                      cfg.Homepage,
		OpenURLs:                      cfg.OpenURLs,
	}
}
