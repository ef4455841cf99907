package smoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/aretw0/tutorcheck/pkg/lint"
)

// ModuleToken is replaced by the module name in an import command.
const ModuleToken = "{module}"

// Runner loads each configured module and records one line per module.
type Runner struct {
	Registry *Registry
	// Tools runs ImportCommand for modules missing from the Registry.
	Tools         lint.Runner
	ImportCommand []string
	Dir           string
	Logger        *slog.Logger
}

// Run loads every module in order. A failing or panicking module never stops
// the remaining ones.
func (r *Runner) Run(ctx context.Context, modules []string) core.Result {
	res := core.NewResult("Imports")
	for _, name := range modules {
		if err := r.load(ctx, name); err != nil {
			res.Fail("Failed to import %s: %v", name, err)
			continue
		}
		res.OK("Successfully imported %s", name)
	}
	return res
}

func (r *Runner) load(ctx context.Context, name string) error {
	var fn LoadFunc
	var err error
	if r.Registry != nil {
		fn, err = r.Registry.Lookup(name)
	} else {
		err = fmt.Errorf("%w: %s", core.ErrNotRegistered, name)
	}
	if errors.Is(err, core.ErrNotRegistered) && len(r.ImportCommand) > 0 && r.Tools != nil {
		fn = r.external(name)
		err = nil
	}
	if err != nil {
		return err
	}
	return Guard(ctx, name, r.Logger, fn)
}

func (r *Runner) external(name string) LoadFunc {
	return func(ctx context.Context) error {
		argv := make([]string, len(r.ImportCommand))
		for i, arg := range r.ImportCommand {
			argv[i] = strings.ReplaceAll(arg, ModuleToken, name)
		}
		out, err := r.Tools.Run(ctx, r.Dir, argv)
		if err != nil {
			return err
		}
		if out.ExitCode != 0 {
			return fmt.Errorf("exit status %d: %s", out.ExitCode, out.Combined())
		}
		return nil
	}
}

// Guard calls fn, turning a panic into an error. The stack is logged at
// error level.
func Guard(ctx context.Context, name string, logger *slog.Logger, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("smoke check panicked", "name", name, "panic", p, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}
