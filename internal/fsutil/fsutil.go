// ABOUTME: Filesystem helpers shared by the feed store and config
// ABOUTME: AtomicWrite replaces a file via renameio so readers never see a partial write

package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

const dirPerm = 0755

// AtomicWrite writes data to a temp file next to path, syncs it, and renames it over path.
// Missing parent directories are created.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return errors.New("path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := renameio.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
