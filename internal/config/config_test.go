package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		content := `
owner: octocat
template: node-starter
projectsFolder: /work/projects
initialCommitMessage: "Start {{projectName}}"
openUrls:
  - https://github.com/{{owner}}/{{projectName}}
  - https://www.npmjs.com/package/{{projectName}}
upgradeTimeout: 90s
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		res, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.False(t, res.Seeded)
		assert.Equal(t, configFile, res.File)

		cfg := res.Config
		assert.Equal(t, "octocat", cfg.Owner)
		assert.Equal(t, "node-starter", cfg.Template)
		assert.Equal(t, "/work/projects", cfg.ProjectsFolder)
		assert.Equal(t, "Start {{projectName}}", cfg.InitialCommitMessage)
		assert.Equal(t, []string{
			"https://github.com/{{owner}}/{{projectName}}",
			"https://www.npmjs.com/package/{{projectName}}",
		}, cfg.OpenURLs)
		assert.Equal(t, 90*time.Second, cfg.UpgradeTimeout)

		// Unset keys fall back to defaults.
		assert.Equal(t, DefaultUpgradeCommitMessage, cfg.UpgradeCommitMessage)
		assert.Equal(t, DefaultHomepage, cfg.Homepage)
		assert.Equal(t, "https://registry.npmjs.org", cfg.RegistryURL)
		assert.Equal(t, "https://github.com", cfg.CloneBaseURL)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("owner: from-file\n"), 0o644))

		t.Setenv("NEW_PROJECT_OWNER", "from-env")
		t.Setenv("NEW_PROJECT_PROJECTS_FOLDER", "/env/projects")
		t.Setenv("NEW_PROJECT_UPGRADE_TIMEOUT", "2m")

		res, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, "from-env", res.Config.Owner)
		assert.Equal(t, "/env/projects", res.Config.ProjectsFolder)
		assert.Equal(t, 2*time.Minute, res.Config.UpgradeTimeout)
	})

	t.Run("expands home in projects folder", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("projectsFolder: ~/code\n"), 0o644))

		res, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "code"), res.Config.ProjectsFolder)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("malformed file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("owner: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("upgradeTimeout: 0s\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upgradeTimeout")
	})
}

func TestLoadSeedsDefaultFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NEW_PROJECT_CONFIG", "")

	res, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.True(t, res.Seeded)

	// os.UserConfigDir uses XDG_CONFIG_HOME on Linux; other platforms have
	// their own location, so only check the suffix.
	assert.Equal(t, filepath.Join(appDir, "config.yaml"), filepath.Join(filepath.Base(filepath.Dir(res.File)), filepath.Base(res.File)))
	assert.FileExists(t, res.File)
	assert.Equal(t, DefaultInitialCommitMessage, res.Config.InitialCommitMessage)
	assert.Equal(t, DefaultUpgradeTimeout, res.Config.UpgradeTimeout)

	// Second load finds the seeded file.
	res, err = NewLoader().Load("")
	require.NoError(t, err)
	assert.False(t, res.Seeded)
}

func TestDefaultConfigFileFromEnv(t *testing.T) {
	t.Setenv("NEW_PROJECT_CONFIG", "/etc/new-project.yaml")
	path, err := DefaultConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/new-project.yaml", path)
}

func TestEncodeDefaults(t *testing.T) {
	data, err := EncodeDefaults()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Set owner and template")

	var decoded fileLayout
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, DefaultReadme, decoded.Readme)
	assert.Equal(t, DefaultOpenURLs, decoded.OpenURLs)
	assert.Equal(t, "5m0s", decoded.UpgradeTimeout)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/projects", want: filepath.Join(home, "projects")},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative", want: "relative"},
		{in: "~user/x", want: "~user/x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.RegistryURL = "registry.npmjs.org"
	assert.Error(t, cfg.Validate())
}
