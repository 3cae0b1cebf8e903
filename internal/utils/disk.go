package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the upload directory if missing and verifies it is
// writable by creating and removing a probe file.
func EnsureUploadDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".writecheck")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("upload dir %s is not writable: %w", dir, err)
	}
	f.Close()

	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("failed to remove probe file in %s: %w", dir, err)
	}

	return nil
}
