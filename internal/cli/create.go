// create.go implements the project creation command.
//
// Orchestration:
//  1. Load configuration (seeding the default file on first use)
//  2. Merge flags over configuration into a ProjectRequest
//  3. Wire the collaborators, dry-run variants when --dry is set
//  4. Run the materialization pipeline and log result and timing
//  5. Remove the project directory again after a dry run
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/new-project/internal/config"
	"github.com/shinji-kodama/new-project/internal/materialize"
	"github.com/shinji-kodama/new-project/internal/model"
	"github.com/shinji-kodama/new-project/internal/output"
	"github.com/shinji-kodama/new-project/internal/tools"
)

// DefaultInitialVersion is written to package.json unless overridden.
const DefaultInitialVersion = "0.1.0"

// createFlags holds the flag values of the command.
type createFlags struct {
	codePath       string // --code-path: editor binary
	hubPath        string // --hub-path: hub binary
	npmPath        string // --npm-path: npm binary
	skipNameCheck  bool   // --skip-name-check: skip npm naming rules and registry lookup
	projectsFolder string // --projects-folder: parent directory of the new project
	template       string // --template: template repository name
	initialVersion string // --initial-version: package.json version
	privateRepo    bool   // --private-repo: create a private repository
	owner          string // --owner: account owning template and new repository
	description    string // --description: package and repository description
	dry            bool   // --dry: print publishing commands instead of running them
}

func registerCreateFlags(cmd *cobra.Command, flags *createFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.codePath, "code-path", "", "Path to the VSCode binary (default: code in PATH)")
	f.StringVar(&flags.hubPath, "hub-path", "", "Path to Hub (GitHub wrapper) binary (default: hub in PATH)")
	f.StringVar(&flags.npmPath, "npm-path", "", "Path to npm binary (default: npm in PATH)")
	f.BoolVar(&flags.skipNameCheck, "skip-name-check", false, "Skip checking if name is taken on npm")
	f.StringVar(&flags.projectsFolder, "projects-folder", "", "Folder to create the project in (default: projectsFolder from config)")
	f.StringVar(&flags.template, "template", "", "Name of the template repository (default: template from config)")
	f.StringVar(&flags.initialVersion, "initial-version", DefaultInitialVersion, "Version field in new package.json")
	f.BoolVar(&flags.privateRepo, "private-repo", false, "Initialize private GitHub repository instead of public")
	f.StringVar(&flags.owner, "owner", "", "Username of GitHub account (default: owner from config)")
	f.StringVar(&flags.description, "description", "", "Description for package.json and GitHub")
	f.BoolVar(&flags.dry, "dry", false, "Do not create or push the remote repository, open the editor or URLs")
}

func runCreate(cmd *cobra.Command, projectName string, flags *createFlags) error {
	output.SetupLogging(verbose)

	loaded, err := config.NewLoader().Load(configFile)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load configuration", err)
	}
	if loaded.Seeded {
		output.Warn("Set up default config at " + output.StyleNoun.Render(loaded.File) + ", please review and edit this file")
	}
	output.Debug("Configuration", "file", loaded.File)

	req, err := buildRequest(projectName, flags, cmd.Flags().Changed, loaded.Config)
	if err != nil {
		return err
	}
	resolveBinaries(&req)

	m := materialize.New(
		newCollaborators(loaded.Config, req, cmd.OutOrStdout()),
		templatesFrom(loaded.Config),
		materialize.WithUpgradeTimeout(loaded.Config.UpgradeTimeout),
	)

	start := time.Now()
	result := m.Run(cmd.Context(), req)
	output.Info("Result: " + output.FormatStatus(result.Status))
	output.Info("Timing: " + time.Since(start).Round(time.Millisecond).String())

	if err := materialize.Cleanup(result, req.Dry); err != nil {
		output.Debug("Cleanup failed", "err", err)
	}

	if result.ExitCode != model.ExitSuccess {
		return &resultError{result: result}
	}
	return nil
}

// buildRequest merges flags over configuration. changed reports whether a
// flag was set explicitly on the command line.
func buildRequest(projectName string, flags *createFlags, changed func(string) bool, cfg *config.Config) (model.ProjectRequest, error) {
	pick := func(flag, flagValue, configValue string) string {
		if changed(flag) {
			return flagValue
		}
		return configValue
	}

	req := model.ProjectRequest{
		Name:           projectName,
		Description:    flags.description,
		Owner:          pick("owner", flags.owner, cfg.Owner),
		Template:       pick("template", flags.template, cfg.Template),
		ProjectsFolder: pick("projects-folder", flags.projectsFolder, cfg.ProjectsFolder),
		InitialVersion: flags.initialVersion,
		SkipNameCheck:  flags.skipNameCheck,
		PrivateRepo:    flags.privateRepo,
		Dry:            flags.dry,
		HubPath:        flags.hubPath,
		NpmPath:        flags.npmPath,
		CodePath:       flags.codePath,
	}

	// A blank name ends the run as emptyName before owner, template or
	// version matter.
	if strings.TrimSpace(req.Name) == "" {
		return req, nil
	}

	if req.Owner == "" {
		return req, model.NewCLIError(model.ExitGeneralError, "owner is not set: pass --owner or set owner in the config file")
	}
	if req.Template == "" {
		return req, model.NewCLIError(model.ExitGeneralError, "template is not set: pass --template or set template in the config file")
	}
	if _, err := semver.StrictNewVersion(req.InitialVersion); err != nil {
		return req, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid --initial-version %q", req.InitialVersion), err)
	}
	return req, nil
}

// resolveBinaries fills unset binary paths from PATH.
func resolveBinaries(req *model.ProjectRequest) {
	if req.CodePath == "" {
		req.CodePath = tools.Which("code")
	}
	if req.HubPath == "" {
		req.HubPath = tools.Which("hub")
	}
	if req.NpmPath == "" {
		req.NpmPath = tools.Which("npm")
	}
}
