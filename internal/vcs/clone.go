package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCloneBaseURL is where "owner/template" identifiers are resolved.
const DefaultCloneBaseURL = "https://github.com"

// Cloner fetches template repositories.
type Cloner struct {
	git     *Git
	baseURL string
}

// NewCloner creates a Cloner that resolves identifiers against baseURL.
// An empty baseURL selects DefaultCloneBaseURL.
func NewCloner(git *Git, baseURL string) *Cloner {
	if baseURL == "" {
		baseURL = DefaultCloneBaseURL
	}
	return &Cloner{git: git, baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the clone URL of owner/template.
func (c *Cloner) URL(owner, template string) string {
	return fmt.Sprintf("%s/%s/%s.git", c.baseURL, owner, template)
}

// Fetch copies the current tree of owner/template into dest without its
// history. dest must not exist; git creates it along with missing parents.
//
// Callers should not rely on a nil error alone to decide that dest was
// populated: the pipeline re-checks dest on disk after every fetch.
func (c *Cloner) Fetch(ctx context.Context, owner, template, dest string) error {
	url := c.URL(owner, template)
	if _, err := c.git.run(ctx, "", "clone", "--depth", "1", "--quiet", url, dest); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}

	// Drop the template's history so the project starts fresh.
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("removing template history: %w", err)
	}
	return nil
}
