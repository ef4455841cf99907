// Package pipeline runs an ordered list of checks and aggregates their results.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/report"
)

// Step is one check of a pipeline.
type Step struct {
	Name  string
	Title string
	Run   func(ctx context.Context) core.Result
}

// Committer records the fixes applied by a run.
type Committer interface {
	CommitAndPush(ctx context.Context) (bool, error)
}

// Pipeline runs its steps sequentially. Steps never abort the run; a failed
// step is recorded and the next one starts.
type Pipeline struct {
	Name  string
	Title string
	Steps []Step
	// Committer is invoked when any step failed or applied a fix.
	Committer Committer
	// FailOnFix counts applied fixes as issues for the exit code.
	FailOnFix bool
	// Informational pipelines always exit 0.
	Informational bool
	Reporter      *report.Reporter
	Logger        *slog.Logger

	mu      sync.RWMutex
	runs    int
	last    *core.Summary
	lastRun time.Time
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Run executes every step and returns the aggregated summary.
func (p *Pipeline) Run(ctx context.Context) core.Summary {
	summary := core.Summary{
		Pipeline:      p.Name,
		FailOnFix:     p.FailOnFix,
		Informational: p.Informational,
	}
	rep := p.Reporter
	if rep != nil {
		rep.Start(p.Title)
	}

	for _, step := range p.Steps {
		if ctx.Err() != nil {
			p.logger().Warn("pipeline interrupted", "pipeline", p.Name, "step", step.Name)
			break
		}
		if rep != nil {
			rep.Step(step.Title)
		}
		started := time.Now()
		res := step.Run(ctx)
		if res.Name == "" {
			res.Name = step.Name
		}
		p.logger().Debug("step finished", "pipeline", p.Name, "step", step.Name,
			"passed", res.Passed(), "fixed", res.Fixed, "duration", time.Since(started))
		if rep != nil {
			rep.Result(res)
		}
		summary.Results = append(summary.Results, res)
	}

	if summary.IssuesFound() && p.Committer != nil && ctx.Err() == nil {
		summary.Committed = p.commit(ctx)
	}

	if rep != nil {
		rep.Summary(summary)
		rep.Finish(p.Title)
	}

	p.record(summary)
	return summary
}

func (p *Pipeline) commit(ctx context.Context) bool {
	if p.Reporter != nil {
		p.Reporter.Step("Checking for changes to commit")
	}
	committed, err := p.Committer.CommitAndPush(ctx)
	if err != nil {
		p.logger().Error("auto-fix commit failed", "error", err)
		if p.Reporter != nil {
			p.Reporter.Line(core.LevelError, "Failed to commit changes: "+err.Error())
		}
		return false
	}
	if p.Reporter != nil {
		if committed {
			p.Reporter.Line(core.LevelOK, "Changes committed and pushed")
		} else {
			p.Reporter.Line(core.LevelInfo, "No automatic fixes were applied. Manual intervention required.")
		}
	}
	return committed
}

func (p *Pipeline) record(s core.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runs++
	p.last = &s
	p.lastRun = time.Now()
}

// StepNames returns the step names in run order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name
	}
	return names
}

// PipelineState exposes the pipeline for observability.
type PipelineState struct {
	Name          string     `json:"name"`
	Steps         []string   `json:"steps"`
	AutoCommit    bool       `json:"auto_commit"`
	FailOnFix     bool       `json:"fail_on_fix"`
	Informational bool       `json:"informational"`
	Runs          int        `json:"runs"`
	LastRun       *time.Time `json:"last_run,omitempty"`
	LastExitCode  *int       `json:"last_exit_code,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Pipeline) State() any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := PipelineState{
		Name:          p.Name,
		Steps:         p.StepNames(),
		AutoCommit:    p.Committer != nil,
		FailOnFix:     p.FailOnFix,
		Informational: p.Informational,
		Runs:          p.runs,
	}
	if p.last != nil {
		code := p.last.ExitCode()
		lastRun := p.lastRun
		state.LastExitCode = &code
		state.LastRun = &lastRun
	}
	return state
}

// ComponentType implements introspection.Component.
func (p *Pipeline) ComponentType() string {
	return "pipeline"
}

var _ introspection.Introspectable = (*Pipeline)(nil)
var _ introspection.Component = (*Pipeline)(nil)
