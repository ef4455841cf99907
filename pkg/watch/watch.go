// Package watch re-runs a callback when tutorial files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/tutorcheck/internal/fsutil"
	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange after a burst of matching filesystem events has
// settled for the debounce interval. Calls never overlap.
type Watcher struct {
	Root     string
	Config   config.Watch
	Logger   *slog.Logger
	OnChange func(ctx context.Context)
}

// New creates a Watcher.
func New(root string, cfg config.Watch, logger *slog.Logger, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{Root: root, Config: cfg, Logger: logger, OnChange: onChange}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

// Matches reports whether path (absolute, or relative to Root) matches one
// of the configured patterns. No patterns match everything.
func (w *Watcher) Matches(path string) bool {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(w.Root, path)
		if err != nil {
			return false
		}
		path = rel
	}
	path = filepath.ToSlash(path)
	if isIgnored(path) {
		return false
	}
	if len(w.Config.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.Config.Patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// isIgnored skips VCS metadata, notebook checkpoints and atomic-write temp files.
func isIgnored(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == ".git" || part == ".ipynb_checkpoints" || part == "__pycache__" {
			return true
		}
		if strings.HasPrefix(part, fsutil.TempFilePrefix) {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(w.Root, path); err == nil && rel != "." && isIgnored(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	dirs := w.Config.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		if err := w.addRecursive(fw, filepath.Join(w.Root, filepath.FromSlash(dir))); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	trigger := make(chan struct{}, 1)
	deb := newDebouncer(w.Config.Debounce, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer deb.stop()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		return w.loop(ctx, fw, deb)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger().Error("watcher stopped", "error", err)
	}))

	w.logger().Info("watching for changes", "root", w.Root, "dirs", dirs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			if w.OnChange != nil {
				w.OnChange(ctx)
			}
		}
	}
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, deb *debouncer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(fw, event.Name)
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.logger().Debug("change detected", "path", event.Name, "op", event.Op.String())
			deb.touch()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Error("fsnotify error", "error", err)
		}
	}
}

// debouncer fires fn once events stop arriving for the interval.
type debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	timer    *time.Timer
	stopped  bool
}

func newDebouncer(interval time.Duration, fn func()) *debouncer {
	return &debouncer{interval: interval, fn: fn}
}

func (d *debouncer) touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
