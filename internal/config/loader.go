package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for new-project configuration.
const envPrefix = "NEW_PROJECT"

// envKeys maps config keys to their environment variables.
var envKeys = map[string]string{
	"owner":                         "NEW_PROJECT_OWNER",
	"template":                      "NEW_PROJECT_TEMPLATE",
	"projectsFolder":                "NEW_PROJECT_PROJECTS_FOLDER",
	"readme":                        "NEW_PROJECT_README",
	"description":                   "NEW_PROJECT_DESCRIPTION",
	"initialCommitMessage":          "NEW_PROJECT_INITIAL_COMMIT_MESSAGE",
	"lockfileCreationCommitMessage": "NEW_PROJECT_LOCKFILE_CREATION_COMMIT_MESSAGE",
	"upgradeCommitMessage":          "NEW_PROJECT_UPGRADE_COMMIT_MESSAGE",
	"homepage":                      "NEW_PROJECT_HOMEPAGE",
	"openUrls":                      "NEW_PROJECT_OPEN_URLS",
	"registryUrl":                   "NEW_PROJECT_REGISTRY_URL",
	"cloneBaseUrl":                  "NEW_PROJECT_CLONE_BASE_URL",
	"upgradeTimeout":                "NEW_PROJECT_UPGRADE_TIMEOUT",
}

// Loader handles loading and merging configuration from file, environment
// and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envKeys {
		_ = v.BindEnv(key, env)
	}

	d := Defaults()
	v.SetDefault("projectsFolder", d.ProjectsFolder)
	v.SetDefault("readme", d.Readme)
	v.SetDefault("description", d.Description)
	v.SetDefault("initialCommitMessage", d.InitialCommitMessage)
	v.SetDefault("lockfileCreationCommitMessage", d.LockfileCreationCommitMessage)
	v.SetDefault("upgradeCommitMessage", d.UpgradeCommitMessage)
	v.SetDefault("homepage", d.Homepage)
	v.SetDefault("openUrls", d.OpenURLs)
	v.SetDefault("registryUrl", d.RegistryURL)
	v.SetDefault("cloneBaseUrl", d.CloneBaseURL)
	v.SetDefault("upgradeTimeout", d.UpgradeTimeout)

	return &Loader{v: v}
}

// Result is a loaded configuration and where it came from.
type Result struct {
	Config *Config

	// File is the config file that was consulted.
	File string

	// Seeded is true when File did not exist and was created with defaults
	// during this load.
	Seeded bool
}

// Load reads configFile, or the default config file when configFile is
// empty. Environment variables take precedence over file values.
//
// An explicitly named file must exist. When the default file is missing it
// is created with the default values, and Result.Seeded reports that.
func (l *Loader) Load(configFile string) (*Result, error) {
	explicit := configFile != ""
	if !explicit {
		var err error
		configFile, err = DefaultConfigFile()
		if err != nil {
			return nil, err
		}
	}

	path, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	result := &Result{File: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err := WriteDefaults(path); err != nil {
			return nil, err
		}
		result.Seeded = true
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ProjectsFolder, err = ExpandPath(cfg.ProjectsFolder)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	result.Config = &cfg
	return result, nil
}
