package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	if err := Init(dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	t.Cleanup(func() { Init("storage") })

	info, err := os.Stat(dir)

	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, err %v", dir, err)
	}

	if Dir() != dir {
		t.Fatalf("Dir() = %q, want %q", Dir(), dir)
	}
}

func TestProfilePicturePath(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"avatar.png", false},
		{"avatar.JPG", false},
		{"avatar.jpeg", false},
		{"avatar.webp", false},
		{"avatar.gif", false},
		{"avatar.svg", true},
		{"avatar", true},
		{"script.sh", true},
	}

	for _, tt := range tests {
		path, err := ProfilePicturePath(tt.filename)

		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got path %q", tt.filename, path)
			}
			continue
		}

		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.filename, err)
			continue
		}

		wantExt := strings.ToLower(filepath.Ext(tt.filename))

		if filepath.Ext(path) != wantExt {
			t.Errorf("%s: path %q does not keep extension %q", tt.filename, path, wantExt)
		}
	}
}

func TestProfilePicturePathsAreUnique(t *testing.T) {
	first, err := ProfilePicturePath("avatar.png")

	if err != nil {
		t.Fatalf("first: %v", err)
	}

	second, err := ProfilePicturePath("avatar.png")

	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if first == second {
		t.Fatalf("generated paths must differ, both %q", first)
	}
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	if err := Init(t.TempDir()); err != nil {
		t.Fatalf("init: %v", err)
	}

	t.Cleanup(func() { Init("storage") })

	if err := Remove("does-not-exist.png"); err != nil {
		t.Fatalf("remove missing file: %v", err)
	}

	if err := Remove(""); err != nil {
		t.Fatalf("remove empty path: %v", err)
	}
}
