package tutorcheck

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/tutorcheck/internal/platform"
	"github.com/aretw0/tutorcheck/pkg/autofix"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/lint"
	"github.com/aretw0/tutorcheck/pkg/pipeline"
	"github.com/aretw0/tutorcheck/pkg/smoke"
)

// --- Types ---

// Platform wires the checkers of one tutorial root.
type Platform = platform.Platform

// Pipeline is an ordered list of checks.
type Pipeline = pipeline.Pipeline

// Summary is the aggregated outcome of a pipeline run.
type Summary = core.Summary

// --- Pipeline names ---

const (
	PipelineFix        = platform.PipelineFix
	PipelineValidate   = platform.PipelineValidate
	PipelineYAML       = platform.PipelineYAML
	PipelineNotebooks  = platform.PipelineNotebooks
	PipelineOutputs    = platform.PipelineOutputs
	PipelineClear      = platform.PipelineClear
	PipelineEnsureDirs = platform.PipelineEnsureDirs
	PipelineSmoke      = platform.PipelineSmoke
	PipelineDoctor     = platform.PipelineDoctor
)

// Pipelines lists every pipeline name in a stable order.
func Pipelines() []string {
	return platform.Names()
}

// --- Configuration ---

// Option defines a functional option for configuring a run.
type Option = platform.Option

// WithConfig uses cfg instead of loading .tutorcheck.yaml.
func WithConfig(cfg *config.Config) Option {
	return platform.WithConfig(cfg)
}

// WithConfigFile loads the configuration from path.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRunner replaces the subprocess runner used for external tools.
func WithRunner(r lint.Runner) Option {
	return platform.WithRunner(r)
}

// WithOutput sets where the human-readable report is written.
func WithOutput(w io.Writer) Option {
	return platform.WithOutput(w)
}

// WithAutoCommit overrides autofix.enabled.
func WithAutoCommit(enabled bool) Option {
	return platform.WithAutoCommit(enabled)
}

// WithVCS replaces the git client used to commit fixes.
func WithVCS(vcs autofix.VCS) Option {
	return platform.WithVCS(vcs)
}

// WithRegistry replaces the registry of statically loadable modules.
func WithRegistry(reg *smoke.Registry) Option {
	return platform.WithRegistry(reg)
}

// --- Factory ---

// New wires the checkers for the tutorial at root.
func New(root string, opts ...Option) (*Platform, error) {
	return platform.New(root, opts...)
}

// --- Operations ---

// Run executes the named pipeline against root.
func Run(ctx context.Context, root, name string, opts ...Option) (Summary, error) {
	p, err := New(root, opts...)
	if err != nil {
		return Summary{}, err
	}
	pl, err := p.Pipeline(name)
	if err != nil {
		return Summary{}, err
	}
	return pl.Run(ctx), nil
}

// --- Utils ---

// FindRoot looks upwards from startDir for a tutorial root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ResolveRoot returns dir as an absolute root, or discovers one from the working directory.
func ResolveRoot(dir string) (string, error) {
	return platform.ResolveRoot(dir)
}
