package archive

import (
	"fmt"
	"os"
	"time"
)

// BackupExisting moves an existing file at path aside with a timestamp
// suffix so a translation run never silently destroys a previous output.
// It returns the backup path, or "" when there was nothing to back up.
func BackupExisting(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := fmt.Sprintf("%s.%s.bak", path, timestamp)

	// Unlikely but possible on rapid re-runs
	if _, err := os.Stat(backupPath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		backupPath = fmt.Sprintf("%s.%s.bak", path, timestamp)
	}

	if err := os.Rename(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up existing output: %w", err)
	}

	return backupPath, nil
}
