package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/tutorcheck/pkg/autofix"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/lint"
	"github.com/aretw0/tutorcheck/pkg/smoke"
)

// options holds the internal configuration for a tutorcheck run.
type options struct {
	config     *config.Config
	configPath string
	logger     *slog.Logger
	runner     lint.Runner
	output     io.Writer
	autoCommit *bool
	vcs        autofix.VCS
	registry   *smoke.Registry
}

// Option defines a functional option for configuring the checks.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithConfig uses cfg instead of loading the configuration file.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigFile loads the configuration from path.
// Defaults to .tutorcheck.yaml at the root; a missing file is not an error.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRunner replaces the subprocess runner used for external tools.
func WithRunner(r lint.Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithOutput sets where the human-readable report is written.
// Nil disables the report.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithAutoCommit overrides autofix.enabled from the configuration.
func WithAutoCommit(enabled bool) Option {
	return func(o *options) {
		o.autoCommit = &enabled
	}
}

// WithVCS replaces the git client used by the auto-fix committer.
func WithVCS(vcs autofix.VCS) Option {
	return func(o *options) {
		o.vcs = vcs
	}
}

// WithRegistry replaces the module registry used by the import checks.
func WithRegistry(reg *smoke.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}
