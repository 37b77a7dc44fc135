package util

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic replaces path so a watcher or browser never sees a
// half-written page. The mode of an existing file is kept.
func WriteFileAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// WriteIfChanged skips the write when path already holds data. It reports
// whether anything was written.
func WriteIfChanged(path string, data []byte) (bool, error) {
	if cur, err := os.ReadFile(path); err == nil && bytes.Equal(cur, data) {
		return false, nil
	}

	if err := WriteFileAtomic(path, data); err != nil {
		return false, err
	}

	return true, nil
}

// OutputPath maps an input file to its location under dir.
func OutputPath(dir, input string) string {
	return filepath.Join(dir, filepath.Base(input))
}
