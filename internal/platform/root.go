package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/tutorcheck/pkg/config"
)

// FindRoot looks upwards from startDir for a tutorial root.
// Indicators are a .tutorcheck.yaml file or a .git directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, config.FileName) || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

// ResolveRoot returns the absolute root to check. An empty dir means the
// nearest root above the working directory, or the working directory itself.
func ResolveRoot(dir string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("unreadable root: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("root %s is not a directory", abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, err := FindRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
