package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aretw0/tutorcheck/pkg/core"
)

// Output is the captured result of an external tool.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr, trimmed.
func (o Output) Combined() string {
	return strings.TrimSpace(strings.TrimSpace(o.Stdout) + "\n" + strings.TrimSpace(o.Stderr))
}

// Runner executes an external command and waits for it.
// A nonzero exit is reported in Output.ExitCode, not as an error;
// the error is reserved for commands that could not be started.
type Runner interface {
	Run(ctx context.Context, dir string, argv []string) (Output, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Logger *slog.Logger
}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string) (Output, error) {
	if len(argv) == 0 {
		return Output{}, fmt.Errorf("%w: empty command", core.ErrToolUnavailable)
	}

	if r.Logger != nil {
		r.Logger.Debug("executing tool", "argv", argv, "dir", dir)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("%w: %s: %v", core.ErrToolUnavailable, argv[0], err)
	}
	return out, nil
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, argv []string) (Output, error)

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, dir string, argv []string) (Output, error) {
	return f(ctx, dir, argv)
}
