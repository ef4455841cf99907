package platform

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/aretw0/tutorcheck/pkg/autofix"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/git"
	"github.com/aretw0/tutorcheck/pkg/layout"
	"github.com/aretw0/tutorcheck/pkg/lint"
	"github.com/aretw0/tutorcheck/pkg/notebook"
	"github.com/aretw0/tutorcheck/pkg/patterns"
	"github.com/aretw0/tutorcheck/pkg/pipeline"
	"github.com/aretw0/tutorcheck/pkg/report"
	"github.com/aretw0/tutorcheck/pkg/smoke"
)

// Pipeline names, one per subcommand.
const (
	PipelineFix        = "fix"
	PipelineValidate   = "validate"
	PipelineYAML       = "yaml"
	PipelineNotebooks  = "notebooks"
	PipelineOutputs    = "outputs"
	PipelineClear      = "clear"
	PipelineEnsureDirs = "ensure-dirs"
	PipelineSmoke      = "smoke"
	PipelineDoctor     = "doctor"
)

// Names lists every pipeline in a stable order.
func Names() []string {
	return []string{
		PipelineFix, PipelineValidate, PipelineYAML, PipelineNotebooks, PipelineOutputs,
		PipelineClear, PipelineEnsureDirs, PipelineSmoke, PipelineDoctor,
	}
}

// Platform wires the checkers of one tutorial root.
type Platform struct {
	Root   string
	Config *config.Config
	Logger *slog.Logger

	runner     lint.Runner
	reporter   *report.Reporter
	registry   *smoke.Registry
	vcs        autofix.VCS
	autoCommit bool
}

// New resolves the configuration for root and wires the checkers.
func New(root string, opts ...Option) (*Platform, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cfg := o.config
	if cfg == nil {
		path := o.configPath
		if path == "" {
			path = filepath.Join(abs, config.FileName)
		}
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Platform{
		Root:       abs,
		Config:     cfg,
		Logger:     logger,
		runner:     o.runner,
		registry:   o.registry,
		vcs:        o.vcs,
		autoCommit: cfg.AutoFix.Enabled,
	}
	if o.autoCommit != nil {
		p.autoCommit = *o.autoCommit
	}
	if p.runner == nil {
		p.runner = lint.NewExecRunner(logger)
	}
	if p.registry == nil {
		p.registry = smoke.NewRegistry()
		patterns.Register(p.registry)
	}
	if p.vcs == nil {
		p.vcs = git.NewClient(abs, logger)
	}
	if o.output != nil {
		p.reporter = report.New(o.output)
	}
	return p, nil
}

// Pipeline builds the named pipeline.
func (p *Platform) Pipeline(name string) (*pipeline.Pipeline, error) {
	var pl *pipeline.Pipeline
	switch name {
	case PipelineFix:
		pl = p.fixPipeline()
	case PipelineValidate:
		pl = p.validatePipeline()
	case PipelineYAML:
		pl = p.yamlPipeline()
	case PipelineNotebooks:
		pl = p.notebooksPipeline()
	case PipelineOutputs:
		pl = p.outputsPipeline()
	case PipelineClear:
		pl = p.clearPipeline()
	case PipelineEnsureDirs:
		pl = p.ensureDirsPipeline()
	case PipelineSmoke:
		pl = p.smokePipeline()
	case PipelineDoctor:
		pl = p.doctorPipeline()
	default:
		return nil, fmt.Errorf("%w: %s (available: %v)", core.ErrUnknownPipeline, name, Names())
	}
	pl.Name = name
	pl.Reporter = p.reporter
	pl.Logger = p.Logger.With("pipeline", name)
	return pl, nil
}

// Pipelines builds every pipeline, in Names order.
func (p *Platform) Pipelines() []*pipeline.Pipeline {
	out := make([]*pipeline.Pipeline, 0, len(Names()))
	for _, name := range Names() {
		pl, _ := p.Pipeline(name)
		out = append(out, pl)
	}
	return out
}

// Registry returns the module registry used by the import checks.
func (p *Platform) Registry() *smoke.Registry {
	return p.registry
}

// IsPipeline reports whether name is a known pipeline.
func IsPipeline(name string) bool {
	return slices.Contains(Names(), name)
}

func (p *Platform) layout() *layout.Checker {
	return layout.NewChecker(p.Root, p.Config.Layout, p.Logger)
}

func (p *Platform) lint() *lint.Checker {
	return lint.NewChecker(p.runner, p.Root, p.Config.Lint, p.Logger)
}

func (p *Platform) notebooks() *notebook.Validator {
	return notebook.NewValidator(p.Root, p.Config.Notebooks, p.Logger)
}

func (p *Platform) importer() *smoke.Runner {
	return &smoke.Runner{
		Registry:      p.registry,
		Tools:         p.runner,
		ImportCommand: p.Config.Smoke.ImportCommand,
		Dir:           p.Root,
		Logger:        p.Logger,
	}
}

func (p *Platform) committer() pipeline.Committer {
	if !p.autoCommit {
		return nil
	}
	cfg := p.Config.AutoFix
	cfg.Enabled = true
	return autofix.NewCommitter(p.vcs, cfg, p.Logger)
}
