// Package pkgmgr runs the npm package manager inside a project directory.
package pkgmgr

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/new-project/internal/proc"
)

// installEnv forces development mode so devDependencies are installed even
// when the operator exports NODE_ENV=production.
var installEnv = []string{"NODE_ENV=development"}

// NPM invokes an npm executable.
type NPM struct {
	path string
}

// NewNPM creates an NPM runner for the executable at path.
func NewNPM(path string) *NPM {
	return &NPM{path: path}
}

// Install runs `npm install` in dir, creating or refreshing the lockfile.
func (n *NPM) Install(ctx context.Context, dir string) error {
	cmd := proc.Command{
		Path: n.path,
		Args: []string{"install"},
		Dir:  dir,
		Env:  installEnv,
	}
	if _, err := proc.Run(ctx, cmd); err != nil {
		return fmt.Errorf("npm install: %w", err)
	}
	return nil
}
