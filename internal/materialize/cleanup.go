package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shinji-kodama/new-project/internal/model"
	"github.com/shinji-kodama/new-project/internal/output"
)

// Cleanup removes the project directory left behind by a dry run, so the
// same name can be tried again.
//
// Nothing is removed for real runs, for dirAlreadyExists (the directory
// belongs to someone else), or when the run never created the directory.
func Cleanup(result *model.ProjectResult, dry bool) error {
	if !dry || result.Status == model.StatusDirAlreadyExists {
		return nil
	}
	if !result.CreatedDir {
		output.Debug("Dry run created no directory", "path", result.ProjectDir)
		return nil
	}

	removeErr := os.RemoveAll(result.ProjectDir)

	if _, err := os.Lstat(result.ProjectDir); !errors.Is(err, fs.ErrNotExist) {
		output.Warn(fmt.Sprintf("Path %s still exists, you have to manually remove it", result.ProjectDir))
		if removeErr != nil {
			return fmt.Errorf("removing %s: %w", result.ProjectDir, removeErr)
		}
		return fmt.Errorf("%s still exists after removal", result.ProjectDir)
	}

	output.Info(fmt.Sprintf("Removed %s again", result.ProjectDir))
	return nil
}
