package watch

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/tutorcheck/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	root := filepath.FromSlash("/repo")
	w := New(root, config.Watch{Patterns: []string{"src/**/*.py", "**/*.ipynb", "*.yml"}}, nil, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"src/patterns/singleton.py", true},
		{"src/app.py", true},
		{"learning-resources/notebooks/01_singleton_pattern.ipynb", true},
		{"docker-compose.yml", true},
		{".github/workflows/ci.yml", false},
		{"README.md", false},
		{"learning-resources/notebooks/.ipynb_checkpoints/01-checkpoint.ipynb", false},
		{"src/patterns/__pycache__/x.py", false},
		{"src/.tutorcheck-tmp-123", false},
		{filepath.Join(root, "src", "patterns", "factory.py"), true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Matches(tt.path))
		})
	}

	t.Run("No Patterns Match Everything", func(t *testing.T) {
		all := New(root, config.Watch{}, nil, nil)
		assert.True(t, all.Matches("README.md"))
		assert.False(t, all.Matches(".git/index"))
	})
}

func TestDebouncer(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	for range 5 {
		d.touch()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 10*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "a burst fires once")

	d.stop()
	d.touch()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "stopped debouncer never fires")
}
