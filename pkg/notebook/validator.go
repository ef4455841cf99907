package notebook

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/tutorcheck/internal/fsutil"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
)

const checkpointDir = ".ipynb_checkpoints"

// Validator runs the notebook checks against a tutorial root.
type Validator struct {
	Root   string
	Config config.Notebooks
	Logger *slog.Logger
}

// NewValidator creates a Validator.
func NewValidator(root string, cfg config.Notebooks, logger *slog.Logger) *Validator {
	return &Validator{Root: root, Config: cfg, Logger: logger}
}

// Discover returns the notebooks matched by the configured glob, sorted,
// excluding checkpoint copies.
func (v *Validator) Discover() ([]string, error) {
	if v.Config.Glob == "" {
		return nil, nil
	}
	pattern := filepath.Join(v.Root, filepath.FromSlash(v.Config.Glob))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}

	out := matches[:0]
	for _, m := range matches {
		if strings.Contains(filepath.ToSlash(m), checkpointDir) {
			continue
		}
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func (v *Validator) expectedPath(name string) string {
	return filepath.Join(v.Root, filepath.FromSlash(v.Config.Dir), name)
}

func (v *Validator) rel(path string) string {
	if r, err := filepath.Rel(v.Root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

// CheckPresence verifies every expected notebook exists and parses.
func (v *Validator) CheckPresence() core.Result {
	res := core.NewResult("Notebooks")
	for _, name := range v.Config.Expected {
		path := v.expectedPath(name)
		if !fsutil.Exists(path) {
			res.Fail("%s missing", name)
			continue
		}
		if _, err := Load(path); err != nil {
			res.Fail("%s has %v", name, err)
			continue
		}
		res.OK("%s is valid", name)
	}
	return res
}

// CheckStructure verifies every discovered notebook parses and has cells and
// metadata. Outputs and execution counts are reported with the configured
// structure severity.
func (v *Validator) CheckStructure() core.Result {
	res := core.NewResult("Notebook Structure")
	sev := core.ParseSeverity(v.Config.StructureSeverity)

	paths, err := v.Discover()
	if err != nil {
		res.Fail("invalid notebook glob %q: %v", v.Config.Glob, err)
		return res
	}
	res.Info("Found %d notebooks to test", len(paths))

	for _, path := range paths {
		name := filepath.Base(path)
		doc, err := Load(path)
		if err != nil {
			res.Fail("%s: %v", name, err)
			continue
		}
		if !doc.Has("cells") {
			res.Fail("%s: Missing cells", name)
			continue
		}
		if !doc.Has("metadata") {
			res.Fail("%s: Missing metadata", name)
			continue
		}
		if doc.HasOutputs() {
			res.Report(sev, "%s: Has outputs (should be cleared)", name)
		}
		if doc.HasExecutionCounts() {
			res.Report(sev, "%s: Has execution counts (should be cleared)", name)
		}
		res.OK("%s: Basic structure valid", name)
	}

	if res.Passed() {
		res.OK("All %d notebooks passed validation", len(paths))
	}
	return res
}

// CheckCleared reports, with the configured cleared severity, every code cell
// that still holds output. Notebooks that do not parse are always failures.
func (v *Validator) CheckCleared() core.Result {
	res := core.NewResult("Notebook Outputs")
	sev := core.ParseSeverity(v.Config.ClearedSeverity)

	paths, err := v.Discover()
	if err != nil {
		res.Fail("invalid notebook glob %q: %v", v.Config.Glob, err)
		return res
	}

	for _, path := range paths {
		rel := v.rel(path)
		doc, err := Load(path)
		if err != nil {
			res.Fail("%s: %v", rel, err)
			continue
		}
		dirty := false
		for _, cell := range doc.CodeCells() {
			if cell.HasOutputs() {
				res.Report(sev, "%s has output that should be cleared", rel)
				dirty = true
			}
		}
		if !dirty {
			res.OK("OK: %s", rel)
		}
	}
	return res
}

// CheckTitleAndTOC verifies every expected notebook has a title cell and a
// table of contents. Problems are errors but never stop the remaining notebooks.
func (v *Validator) CheckTitleAndTOC() core.Result {
	res := core.NewResult("Notebooks")

	if !fsutil.IsDir(filepath.Join(v.Root, filepath.FromSlash(v.Config.Dir))) {
		res.Fail("%s directory does not exist", v.Config.Dir)
		return res
	}

	for _, name := range v.Config.Expected {
		path := v.expectedPath(name)
		if !fsutil.Exists(path) {
			res.Fail("Missing notebook: %s", name)
			continue
		}
		doc, err := Load(path)
		if err != nil {
			res.Fail("%s: %v", name, err)
			continue
		}
		if !doc.Has("cells") {
			res.Fail("%s: Missing 'cells' field", name)
			continue
		}

		hasTitle, hasTOC := v.scanMarkdown(doc)
		if !hasTitle {
			res.Fail("%s: Missing proper title", name)
		}
		if !hasTOC {
			res.Fail("%s: Missing table of contents", name)
		}
	}

	if res.Passed() {
		res.OK("All %d notebooks are valid", len(v.Config.Expected))
	}
	return res
}

func (v *Validator) scanMarkdown(doc *Document) (hasTitle, hasTOC bool) {
	for _, cell := range doc.Cells() {
		if cell.Type() != CellMarkdown {
			continue
		}
		src := cell.Source()
		if strings.HasPrefix(src, v.Config.TitlePrefix) && strings.Contains(src, v.Config.TitleMarker) {
			hasTitle = true
		}
		if v.Config.TOCMarker != "" && strings.Contains(src, v.Config.TOCMarker) {
			hasTOC = true
		}
	}
	return hasTitle, hasTOC
}

// ClearAll clears outputs in every discovered notebook, rewriting only the
// notebooks that changed. Running it twice leaves the files byte-identical.
func (v *Validator) ClearAll() core.Result {
	res := core.NewResult("Clear Outputs")

	paths, err := v.Discover()
	if err != nil {
		res.Fail("invalid notebook glob %q: %v", v.Config.Glob, err)
		return res
	}

	cleared := 0
	for _, path := range paths {
		name := filepath.Base(path)
		doc, err := Load(path)
		if err != nil {
			res.Warn("Error clearing %s: %v", name, err)
			continue
		}
		if !doc.ClearOutputs() {
			res.OK("%s already clean", name)
			continue
		}
		if err := doc.Save(path, v.Config.Indent); err != nil {
			res.Warn("Error clearing %s: %v", name, err)
			continue
		}
		if v.Logger != nil {
			v.Logger.Debug("cleared notebook outputs", "path", path)
		}
		res.Fix("Cleared outputs from %s", name)
		cleared++
	}

	res.Info("Cleared outputs from %d notebooks", cleared)
	return res
}
