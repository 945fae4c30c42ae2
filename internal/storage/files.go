// Package storage keeps uploaded files on local disk under a configurable
// base directory. Database rows store paths relative to that directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxProfilePictureSize caps uploads at 2MB.
const MaxProfilePictureSize = 2 << 20

const profilePictureDir = "profile-pictures"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var baseDir = "storage"

func Init(dir string) error {
	if dir != "" {
		baseDir = dir
	}

	return os.MkdirAll(filepath.Join(baseDir, profilePictureDir), 0o755)
}

// ProfilePicturePath allocates a fresh relative path for an upload,
// keeping only the original file's extension.
func ProfilePicturePath(originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	return filepath.Join(profilePictureDir, uuid.NewString()+ext), nil
}

// Dir is the configured base directory.
func Dir() string {
	return baseDir
}

// Abs resolves a stored relative path to its on-disk location.
func Abs(path string) string {
	return filepath.Join(baseDir, path)
}

// Remove deletes a stored file. A missing file or empty path is not an
// error; the row is already the source of truth.
func Remove(path string) error {
	if path == "" {
		return nil
	}

	err := os.Remove(filepath.Join(baseDir, path))

	if os.IsNotExist(err) {
		return nil
	}

	return err
}
