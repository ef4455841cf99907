// Package fsutil holds small filesystem helpers shared by the checks.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix names the staging files of WriteFileAtomic.
// Watchers ignore files with this prefix.
const TempFilePrefix = ".tutorcheck-tmp-"

// WriteFileAtomic replaces filename with data. The data is staged in a temp
// file in the same directory and renamed over the target, so readers never
// see a partial notebook.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filename, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filename, err)
	}

	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", filename, err)
	}
	if err = os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// ReplaceFile writes data atomically, keeping the mode of an existing file.
func ReplaceFile(path string, data []byte) error {
	return WriteFileAtomic(path, data, ModeOf(path, 0644))
}

// ModeOf returns the permission bits of path, or fallback when it cannot be stat'ed.
func ModeOf(path string, fallback os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return fallback
	}
	return info.Mode().Perm()
}

// Exists reports whether path exists. Permission errors count as existing.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Touch creates an empty file, leaving an existing one untouched.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to touch %s: %w", path, err)
	}
	return f.Close()
}
