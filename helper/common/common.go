package common

import (
	"fmt"
	"os"
	"path/filepath"
)

// SetupDataDir creates the data directory and the given sub-directories under it
func SetupDataDir(dataDir string, paths []string) error {
	for _, path := range append([]string{""}, paths...) {
		dir := filepath.Join(dataDir, path)

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// DirectoryExists reports whether path names an existing directory
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
