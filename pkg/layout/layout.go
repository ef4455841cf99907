// Package layout checks that a tutorial checkout has the directories and
// files the rest of the tooling expects, and creates the few it may create.
package layout

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tutorcheck/internal/fsutil"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/core"
)

// MarkerSuffix is appended to a directory name when the directory could not be created.
const MarkerSuffix = "_exists.marker"

// Checker inspects paths relative to Root.
type Checker struct {
	Root   string
	Config config.Layout
	Logger *slog.Logger
}

// NewChecker creates a Checker for the given tutorial root.
func NewChecker(root string, cfg config.Layout, logger *slog.Logger) *Checker {
	return &Checker{Root: root, Config: cfg, Logger: logger}
}

func (c *Checker) path(rel string) string {
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// CheckDirectories reports every directory of the quick check list.
func (c *Checker) CheckDirectories() core.Result {
	res := core.NewResult("Directories")
	for _, dir := range c.Config.CheckDirs {
		if fsutil.Exists(c.path(dir)) {
			res.OK("Directory %s exists", dir)
		} else {
			res.Fail("Directory %s missing", dir)
		}
	}
	return res
}

// CheckStructure reports every missing required directory and file.
// A missing path never stops the remaining paths from being checked.
func (c *Checker) CheckStructure() core.Result {
	res := core.NewResult("Project Structure")
	for _, dir := range c.Config.RequiredDirs {
		if !fsutil.IsDir(c.path(dir)) {
			res.Fail("Missing directory: %s", dir)
		}
	}
	for _, file := range c.Config.RequiredFiles {
		if !fsutil.Exists(c.path(file)) {
			res.Fail("Missing file: %s", file)
		}
	}
	if res.Passed() {
		res.OK("Project structure is valid")
	}
	return res
}

// CheckGroup reports the files of a named group that do not exist.
func (c *Checker) CheckGroup(name string, files []string) core.Result {
	res := core.NewResult(name)
	for _, file := range files {
		if !fsutil.Exists(c.path(file)) {
			res.Fail("%s does not exist", file)
		}
	}
	if res.Passed() {
		res.OK("%s configuration is valid", name)
	}
	return res
}

// CheckSourceFiles reports the sample implementations missing from the source directory.
func (c *Checker) CheckSourceFiles() core.Result {
	res := core.NewResult("Source Files")
	if !fsutil.IsDir(c.path(c.Config.SourceDir)) {
		res.Fail("%s directory does not exist", c.Config.SourceDir)
		return res
	}
	for _, file := range c.Config.SourceFiles {
		if !fsutil.Exists(c.path(filepath.Join(c.Config.SourceDir, file))) {
			res.Fail("Missing pattern implementation: %s", file)
		}
	}
	if res.Passed() {
		res.OK("All %d pattern implementations are present", len(c.Config.SourceFiles))
	}
	return res
}

// CheckTestFiles reports test files that are missing or hold no test functions.
func (c *Checker) CheckTestFiles() core.Result {
	res := core.NewResult("Tests")
	if !fsutil.IsDir(c.path(c.Config.TestDir)) {
		res.Fail("%s directory does not exist", c.Config.TestDir)
		return res
	}
	for _, file := range c.Config.TestFiles {
		data, err := os.ReadFile(c.path(filepath.Join(c.Config.TestDir, file)))
		if errors.Is(err, fs.ErrNotExist) {
			res.Fail("Missing test file: %s", file)
			continue
		}
		if err != nil {
			res.Fail("%s: Error reading file - %v", file, err)
			continue
		}
		if c.Config.TestMarker != "" && !strings.Contains(string(data), c.Config.TestMarker) {
			res.Fail("%s: No test functions found", file)
		}
	}
	if res.Passed() {
		res.OK("All %d test files are present", len(c.Config.TestFiles))
	}
	return res
}

// EnsureDirectories creates the ensure list and the README stubs.
//
// A directory that cannot be created is downgraded to a warning and a
// marker file named after it is touched at the root instead. README stubs
// are only written when absent and when their parent directory exists.
func (c *Checker) EnsureDirectories() core.Result {
	res := core.NewResult("Ensure Directories")

	for _, dir := range c.Config.EnsureDirs {
		full := c.path(dir)
		if fsutil.Exists(full) {
			res.OK("Directory exists: %s", dir)
			continue
		}

		if err := os.MkdirAll(full, 0755); err != nil {
			res.Warn("Cannot create %s: %v", dir, err)
			if c.Logger != nil {
				c.Logger.Warn("directory creation failed, writing marker", "dir", dir, "error", err)
			}
			marker := MarkerName(dir)
			if err := fsutil.Touch(c.path(marker)); err != nil {
				res.Warn("Could not create marker %s: %v", marker, err)
			}
			continue
		}
		res.Fix("Created directory: %s", dir)
	}

	for _, stub := range c.Config.ReadmeStubs {
		full := c.path(stub.Path)
		if fsutil.Exists(full) || !fsutil.IsDir(filepath.Dir(full)) {
			continue
		}
		if err := os.WriteFile(full, []byte(stub.Content), 0644); err != nil {
			res.Warn("Could not create %s: %v", stub.Path, err)
			continue
		}
		res.Fix("Created: %s", stub.Path)
	}

	return res
}

// MarkerName is the root-level marker file written for dir when dir cannot be created.
func MarkerName(dir string) string {
	return strings.ReplaceAll(strings.Trim(filepath.ToSlash(dir), "/"), "/", "_") + MarkerSuffix
}
