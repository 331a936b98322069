package photo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KondratDima/TrackCaloryGraduationProject/internal/photo"
)

func TestSaveDeleteExists(t *testing.T) {
	t.Parallel()
	d, err := photo.New(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("new photo dir: %v", err)
	}

	path, err := d.Save([]byte{0xFF, 0xD8, 0xFF}, "dinner.JPEG")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(path, ".jpeg") {
		t.Fatalf("expected preserved lowercase extension, got %q", path)
	}
	if !d.Exists(path) {
		t.Fatalf("expected saved photo to exist")
	}

	if err := d.Delete(path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if d.Exists(path) {
		t.Fatalf("expected photo gone after delete")
	}
	// deleting twice is fine
	if err := d.Delete(path); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	t.Parallel()
	d, err := photo.New(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("new photo dir: %v", err)
	}
	a, err := d.Save([]byte("a"), "x.png")
	if err != nil {
		t.Fatalf("save a: %v", err)
	}
	b, err := d.Save([]byte("b"), "x.png")
	if err != nil {
		t.Fatalf("save b: %v", err)
	}
	if a == b {
		t.Fatalf("expected unique filenames, both were %q", a)
	}
}

func TestImportCopiesFile(t *testing.T) {
	t.Parallel()
	src := filepath.Join(t.TempDir(), "source.jpg")
	if err := os.WriteFile(src, []byte("image-bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	d, err := photo.New(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("new photo dir: %v", err)
	}
	path, err := d.Import(src)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read imported: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("imported contents differ: %q", data)
	}
	if !d.Exists(src) {
		// Import copies, the source stays in place
		t.Fatalf("expected source file untouched")
	}
}

func TestSaveRejectsEmpty(t *testing.T) {
	t.Parallel()
	d, err := photo.New(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("new photo dir: %v", err)
	}
	if _, err := d.Save(nil, "x.jpg"); err == nil {
		t.Fatalf("expected error for empty photo data")
	}
}
