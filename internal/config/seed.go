package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileLayout is the on-disk shape of the config file. Durations are written
// as strings ("5m0s") so the file stays readable.
type fileLayout struct {
	Owner                         string   `yaml:"owner"`
	Template                      string   `yaml:"template"`
	ProjectsFolder                string   `yaml:"projectsFolder"`
	Readme                        string   `yaml:"readme"`
	Description                   string   `yaml:"description"`
	InitialCommitMessage          string   `yaml:"initialCommitMessage"`
	LockfileCreationCommitMessage string   `yaml:"lockfileCreationCommitMessage"`
	UpgradeCommitMessage          string   `yaml:"upgradeCommitMessage"`
	Homepage                      string   `yaml:"homepage"`
	OpenURLs                      []string `yaml:"openUrls"`
	RegistryURL                   string   `yaml:"registryUrl"`
	CloneBaseURL                  string   `yaml:"cloneBaseUrl"`
	UpgradeTimeout                string   `yaml:"upgradeTimeout"`
}

const seedComment = `new-project configuration.
Set owner and template before the first run. Text values may use
{{owner}}, {{template}}, {{initialVersion}} and {{projectName}}.`

// EncodeDefaults renders the default configuration as a commented YAML
// document.
func EncodeDefaults() ([]byte, error) {
	d := Defaults()
	layout := fileLayout{
		Owner:                         d.Owner,
		Template:                      d.Template,
		ProjectsFolder:                d.ProjectsFolder,
		Readme:                        d.Readme,
		Description:                   d.Description,
		InitialCommitMessage:          d.InitialCommitMessage,
		LockfileCreationCommitMessage: d.LockfileCreationCommitMessage,
		UpgradeCommitMessage:          d.UpgradeCommitMessage,
		Homepage:                      d.Homepage,
		OpenURLs:                      d.OpenURLs,
		RegistryURL:                   d.RegistryURL,
		CloneBaseURL:                  d.CloneBaseURL,
		UpgradeTimeout:                d.UpgradeTimeout.String(),
	}

	var body yaml.Node
	if err := body.Encode(layout); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	doc := yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: seedComment,
		Content:     []*yaml.Node{&body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefaults writes the default configuration to path, creating parent
// directories as needed.
func WriteDefaults(path string) error {
	data, err := EncodeDefaults()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing default config to %s: %w", path, err)
	}
	return nil
}
