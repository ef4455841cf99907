package smoke

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aretw0/tutorcheck/pkg/core"
)

// Check is a functional test of a sample module.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunChecks runs every check and records a line per check.
func RunChecks(ctx context.Context, title string, checks []Check, logger *slog.Logger) core.Result {
	res := core.NewResult(title)
	for _, c := range checks {
		if err := Guard(ctx, c.Name, logger, c.Run); err != nil {
			res.Fail("%s: %v", c.Name, err)
			continue
		}
		res.OK("%s works", c.Name)
	}
	if res.Passed() && len(checks) > 0 {
		res.OK("All %d checks passed", len(checks))
	}
	return res
}

// Select returns the checks with the given names, keeping their order.
// No names selects everything.
func Select(checks []Check, names ...string) []Check {
	if len(names) == 0 {
		return checks
	}
	var out []Check
	for _, c := range checks {
		if slices.Contains(names, c.Name) {
			out = append(out, c)
		}
	}
	return out
}
