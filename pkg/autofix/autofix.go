// Package autofix commits and pushes the changes left behind by the fixers.
package autofix

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tutorcheck/pkg/config"
)

// VCS is the version control surface the Committer needs.
type VCS interface {
	ChangedFiles(ctx context.Context) ([]string, error)
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, msg string) error
	Push(ctx context.Context, remote, branch string) error
	CurrentBranch() (string, error)
}

// Committer records fixes as a single commit.
type Committer struct {
	VCS    VCS
	Config config.AutoFix
	Logger *slog.Logger
}

// NewCommitter creates a Committer.
func NewCommitter(vcs VCS, cfg config.AutoFix, logger *slog.Logger) *Committer {
	return &Committer{VCS: vcs, Config: cfg, Logger: logger}
}

func (c *Committer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// CommitAndPush stages everything and commits when the working tree has
// changes, then pushes. It reports whether a commit was made. A failed push
// is logged and does not turn into an error.
func (c *Committer) CommitAndPush(ctx context.Context) (bool, error) {
	if !c.Config.Enabled {
		return false, nil
	}

	changed, err := c.VCS.ChangedFiles(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list changes: %w", err)
	}
	if len(changed) == 0 {
		c.logger().Debug("nothing to commit")
		return false, nil
	}

	if err := c.VCS.AddAll(ctx); err != nil {
		return false, fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := c.VCS.Commit(ctx, c.Config.Message); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	c.logger().Info("committed fixes", "files", len(changed))

	branch := c.Config.Branch
	if branch == "" {
		branch, err = c.VCS.CurrentBranch()
		if err != nil {
			c.logger().Warn("push skipped: cannot resolve current branch", "error", err)
			return true, nil
		}
	}
	if err := c.VCS.Push(ctx, c.Config.Remote, branch); err != nil {
		c.logger().Warn("push failed", "remote", c.Config.Remote, "branch", branch, "error", err)
	}
	return true, nil
}
