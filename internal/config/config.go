// Package config loads the operator's settings for new-project.
//
// Settings come from a YAML file (by default
// $XDG_CONFIG_HOME/new-project/config.yaml), overridden by NEW_PROJECT_*
// environment variables. Every key has a default, so a missing file still
// yields a usable configuration. On first use the defaults are written to the
// default location for the operator to review.
//
// Text settings such as readme and the commit messages are templates: they
// may reference {{owner}}, {{template}}, {{initialVersion}} and
// {{projectName}}.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shinji-kodama/new-project/internal/registry"
	"github.com/shinji-kodama/new-project/internal/vcs"
)

// Config is the resolved configuration.
type Config struct {
	// Owner is the account that owns both the template and the new
	// repository.
	Owner string `mapstructure:"owner"`

	// Template is the name of the template repository under Owner.
	Template string `mapstructure:"template"`

	// ProjectsFolder is the directory new projects are created in.
	// A leading "~" is expanded to the home directory.
	ProjectsFolder string `mapstructure:"projectsFolder"`

	// Readme is written to the new project's readme.md.
	Readme string `mapstructure:"readme"`

	// Description is used for package.json and the remote repository when
	// --description is not given.
	Description string `mapstructure:"description"`

	InitialCommitMessage          string `mapstructure:"initialCommitMessage"`
	LockfileCreationCommitMessage string `mapstructure:"lockfileCreationCommitMessage"`
	UpgradeCommitMessage          string `mapstructure:"upgradeCommitMessage"`

	// Homepage is the URL recorded on the remote repository.
	Homepage string `mapstructure:"homepage"`

	// OpenURLs are opened after the project was published.
	OpenURLs []string `mapstructure:"openUrls"`

	// RegistryURL is the npm registry used for name checks and upgrades.
	RegistryURL string `mapstructure:"registryUrl"`

	// CloneBaseURL is prefixed to "owner/template" to clone the template.
	CloneBaseURL string `mapstructure:"cloneBaseUrl"`

	// UpgradeTimeout bounds the dependency upgrade stage.
	UpgradeTimeout time.Duration `mapstructure:"upgradeTimeout"`
}

// Default values for every key.
const (
	DefaultProjectsFolder                = "~/projects"
	DefaultReadme                        = "# {{projectName}}\n\nCreated from [{{owner}}/{{template}}](https://github.com/{{owner}}/{{template}}).\n"
	DefaultDescription                   = "{{projectName}}, based on {{owner}}/{{template}}"
	DefaultInitialCommitMessage          = "Initial commit from {{owner}}/{{template}}"
	DefaultLockfileCreationCommitMessage = "Created package-lock.json"
	DefaultUpgradeCommitMessage          = "Upgraded dependencies"
	DefaultHomepage                      = "https://github.com/{{owner}}/{{projectName}}"
	DefaultUpgradeTimeout                = 5 * time.Minute
)

// DefaultOpenURLs are opened after a successful run.
var DefaultOpenURLs = []string{"https://github.com/{{owner}}/{{projectName}}"}

// Defaults returns a Config holding the default of every key.
func Defaults() *Config {
	return &Config{
		ProjectsFolder:                DefaultProjectsFolder,
		Readme:                        DefaultReadme,
		Description:                   DefaultDescription,
		InitialCommitMessage:          DefaultInitialCommitMessage,
		LockfileCreationCommitMessage: DefaultLockfileCreationCommitMessage,
		UpgradeCommitMessage:          DefaultUpgradeCommitMessage,
		Homepage:                      DefaultHomepage,
		OpenURLs:                      append([]string(nil), DefaultOpenURLs...),
		RegistryURL:                   registry.DefaultURL,
		CloneBaseURL:                  vcs.DefaultCloneBaseURL,
		UpgradeTimeout:                DefaultUpgradeTimeout,
	}
}

// Validate checks values that would otherwise only fail deep inside a run.
// Owner and Template may be empty here; the command line can still supply
// them.
func (c *Config) Validate() error {
	if c.UpgradeTimeout <= 0 {
		return fmt.Errorf("upgradeTimeout must be positive, got %s", c.UpgradeTimeout)
	}
	for key, raw := range map[string]string{"registryUrl": c.RegistryURL, "cloneBaseUrl": c.CloneBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
		}
	}
	return nil
}
