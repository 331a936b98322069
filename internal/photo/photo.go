// Package photo stores meal photos as files under the app data directory.
// Entries reference photos by absolute path; the file's existence is what
// makes an entry's HasPhoto true.
package photo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Dir is a photo directory. The zero value is not usable; construct with New.
type Dir struct {
	root string
}

// New returns a Dir rooted at root, creating it if needed.
func New(root string) (*Dir, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("photo directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Save writes image bytes to a uuid-named file and returns its path. The
// extension of the original filename is preserved, defaulting to .jpg.
func (d *Dir) Save(data []byte, originalName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("photo data is empty")
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(d.root, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo file: %w", err)
	}
	return path, nil
}

// Import copies an existing image file into the photo directory.
func (d *Dir) Import(sourcePath string) (string, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source photo: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read source photo: %w", err)
	}
	return d.Save(data, sourcePath)
}

// Delete removes a photo file. A path that is already gone is not an error;
// the goal is that the file no longer exists.
func (d *Dir) Delete(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete photo file: %w", err)
	}
	return nil
}

// Exists reports whether the photo file is still on disk.
func (d *Dir) Exists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
