// Package lint drives the external formatters and the syntax linter.
package lint

import (
	"context"
	"log/slog"

	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/aretw0/tutorcheck/pkg/core"
)

// Checker runs the configured tools in Dir.
type Checker struct {
	Runner Runner
	Dir    string
	Config config.Lint
	Logger *slog.Logger
}

// NewChecker creates a Checker.
func NewChecker(runner Runner, dir string, cfg config.Lint, logger *slog.Logger) *Checker {
	return &Checker{Runner: runner, Dir: dir, Config: cfg, Logger: logger}
}

// CheckFormatting runs each formatter in check mode. The first one that
// reports drift is re-run in write mode and the check returns right away,
// marked Fixed, without verifying the result. Later formatters are not run.
func (c *Checker) CheckFormatting(ctx context.Context) core.Result {
	res := core.NewResult("Formatting")

	for _, tool := range c.Config.Formatters {
		out, err := c.Runner.Run(ctx, c.Dir, tool.Check)
		if err != nil {
			res.Fail("%s could not run: %v", tool.Name, err)
			continue
		}
		if out.ExitCode == 0 {
			res.OK("%s formatting is correct", tool.Name)
			continue
		}

		res.Warn("%s formatting issues found. Fixing...", tool.Name)
		if len(tool.Fix) == 0 {
			res.Fail("%s has no fix command", tool.Name)
			return res
		}
		fixOut, err := c.Runner.Run(ctx, c.Dir, tool.Fix)
		if err != nil {
			res.Fail("%s could not run in write mode: %v", tool.Name, err)
			return res
		}
		if fixOut.ExitCode != 0 && c.Logger != nil {
			c.Logger.Warn("formatter exited nonzero in write mode", "tool", tool.Name, "code", fixOut.ExitCode, "output", fixOut.Combined())
		}
		res.Fix("%s formatting fixed", tool.Name)
		return res
	}

	return res
}

// CheckSyntax runs the linter once. Any nonzero exit is a failure carrying
// the linter's output. Nothing is repaired.
func (c *Checker) CheckSyntax(ctx context.Context) core.Result {
	res := core.NewResult("Syntax")
	tool := c.Config.Linter
	if len(tool.Check) == 0 {
		res.Info("No linter configured")
		return res
	}

	out, err := c.Runner.Run(ctx, c.Dir, tool.Check)
	if err != nil {
		res.Fail("%s could not run: %v", tool.Name, err)
		return res
	}
	if out.ExitCode != 0 {
		res.Fail("Syntax errors found:\n%s", out.Combined())
		return res
	}
	res.OK("No syntax errors found")
	return res
}
