package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "trackcal"
	dbFileName = "trackcal.db"
	photoDir   = "photos"
)

// DefaultDBPath resolves the sqlite database location under the user config dir.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// DefaultPhotoDir resolves where meal photos are stored. Photos live next to
// the database so a backup of the app dir captures both.
func DefaultPhotoDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, photoDir), nil
}

// EnsureDBDir creates the parent directory for the database file.
func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
