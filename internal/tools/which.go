package tools

import (
	"os/exec"

	"github.com/shinji-kodama/new-project/internal/output"
)

// Which resolves name in PATH. When no executable is found it logs a warning
// and returns "", leaving the failure to the stage that needs the program.
func Which(name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		output.Warn("No executable found for " + name)
		return ""
	}
	return path
}
