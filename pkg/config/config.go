// Package config describes what the checks look for.
//
// Every list the checks consume (required directories, expected notebooks,
// sample modules, YAML files, tool command lines) lives here instead of in
// the checkers, so callers and tests can substitute their own.
package config

import "time"

// Config is the complete configuration of a tutorcheck run.
type Config struct {
	Layout    Layout    `koanf:"layout"`
	Lint      Lint      `koanf:"lint"`
	Notebooks Notebooks `koanf:"notebooks"`
	Smoke     Smoke     `koanf:"smoke"`
	YAML      YAML      `koanf:"yaml"`
	AutoFix   AutoFix   `koanf:"autofix"`
	Doctor    Doctor    `koanf:"doctor"`
	Watch     Watch     `koanf:"watch"`
}

// Layout lists the paths the presence checker looks for.
type Layout struct {
	CheckDirs     []string `koanf:"check_dirs"`
	RequiredDirs  []string `koanf:"required_dirs"`
	RequiredFiles []string `koanf:"required_files"`
	EnsureDirs    []string `koanf:"ensure_dirs"`
	ReadmeStubs   []Stub   `koanf:"readme_stubs"`
	DockerFiles   []string `koanf:"docker_files"`
	SourceDir     string   `koanf:"source_dir"`
	SourceFiles   []string `koanf:"source_files"`
	TestDir       string   `koanf:"test_dir"`
	TestFiles     []string `koanf:"test_files"`
	TestMarker    string   `koanf:"test_marker"`
}

// Stub is a file written only when it is missing and its parent directory exists.
type Stub struct {
	Path    string `koanf:"path"`
	Content string `koanf:"content"`
}

// Tool is an external command with an optional write mode.
// Commands are argv lists and never go through a shell.
type Tool struct {
	Name  string   `koanf:"name"`
	Check []string `koanf:"check"`
	Fix   []string `koanf:"fix"`
}

// Lint configures the formatters and the syntax linter.
type Lint struct {
	Formatters []Tool `koanf:"formatters"`
	Linter     Tool   `koanf:"linter"`
}

// Notebooks configures notebook discovery and validation.
type Notebooks struct {
	// Dir holds the Expected notebooks.
	Dir      string   `koanf:"dir"`
	Expected []string `koanf:"expected"`
	// Glob discovers notebooks relative to the root (doublestar syntax).
	Glob              string `koanf:"glob"`
	TitlePrefix       string `koanf:"title_prefix"`
	TitleMarker       string `koanf:"title_marker"`
	TOCMarker         string `koanf:"toc_marker"`
	StructureSeverity string `koanf:"structure_severity"`
	ClearedSeverity   string `koanf:"cleared_severity"`
	Indent            int    `koanf:"indent"`
}

// Smoke configures the sample module smoke tests.
type Smoke struct {
	Modules []string `koanf:"modules"`
	// ImportCommand loads modules that are not statically registered.
	// The token {module} is replaced by the module name.
	ImportCommand []string `koanf:"import_command"`
}

// YAML lists the files checked for YAML syntax.
type YAML struct {
	Files []string `koanf:"files"`
}

// AutoFix configures the commit of formatter changes.
type AutoFix struct {
	Enabled bool   `koanf:"enabled"`
	Remote  string `koanf:"remote"`
	// Branch is the push target. Empty means the current branch.
	Branch  string `koanf:"branch"`
	Message string `koanf:"message"`
}

// Doctor configures the environment report.
type Doctor struct {
	Files []string `koanf:"files"`
	Tools []string `koanf:"tools"`
	// NbVal runs the notebook execution plugin against the first notebook found.
	NbVal []string `koanf:"nbval"`
}

// Watch configures the file watcher.
type Watch struct {
	Dirs     []string      `koanf:"dirs"`
	Patterns []string      `koanf:"patterns"`
	Debounce time.Duration `koanf:"debounce"`
}
