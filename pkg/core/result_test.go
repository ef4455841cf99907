package core_test

import (
	"testing"

	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	res := core.NewResult("Layout")
	res.OK("src exists")
	res.Warn("docs is empty")
	assert.True(t, res.Passed(), "warnings do not fail a result")

	res.Fail("Missing file: %s", "README.md")
	res.Info("checked %d paths", 3)
	assert.False(t, res.Passed())
	assert.False(t, res.Fixed)
	assert.Equal(t, []string{"Missing file: README.md"}, res.Errors())
	assert.Equal(t, []string{"docs is empty"}, res.Warnings())
	assert.Len(t, res.Entries, 4)
	assert.Equal(t, core.LevelInfo, res.Entries[3].Level)

	t.Run("Fix Marks Result", func(t *testing.T) {
		r := core.NewResult("Formatting")
		r.Fix("black formatting fixed")
		assert.True(t, r.Fixed)
		assert.True(t, r.Passed())
	})

	t.Run("Merge Keeps Order And Fixed", func(t *testing.T) {
		a := core.NewResult("A")
		a.OK("one")
		b := core.NewResult("B")
		b.Fix("two")
		a.Merge(b)

		assert.Equal(t, "A", a.Name)
		assert.True(t, a.Fixed)
		assert.Equal(t, "two", a.Entries[1].Message)
	})
}

func TestReportSeverity(t *testing.T) {
	res := core.NewResult("Notebooks")
	res.Report(core.ParseSeverity("Warning"), "a has outputs")
	res.Report(core.ParseSeverity("error"), "b has outputs")
	res.Report(core.ParseSeverity("bogus"), "c has outputs")

	assert.Equal(t, []string{"a has outputs"}, res.Warnings())
	assert.Equal(t, []string{"b has outputs", "c has outputs"}, res.Errors())
}

func TestSummary(t *testing.T) {
	ok := core.NewResult("Directories")
	ok.OK("fine")
	fixed := core.NewResult("Formatting")
	fixed.Fix("fixed")
	failed := core.NewResult("Syntax")
	failed.Fail("bad")

	tests := []struct {
		name     string
		summary  core.Summary
		issues   bool
		exitCode int
	}{
		{"Clean", core.Summary{Results: []core.Result{ok}}, false, 0},
		{"Failure", core.Summary{Results: []core.Result{ok, failed}}, true, 1},
		{"Fix Without FailOnFix", core.Summary{Results: []core.Result{fixed}}, true, 0},
		{"Fix With FailOnFix", core.Summary{Results: []core.Result{fixed}, FailOnFix: true}, true, 1},
		{"Informational", core.Summary{Results: []core.Result{failed}, Informational: true}, true, 0},
		{"Empty", core.Summary{}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.issues, tt.summary.IssuesFound())
			assert.Equal(t, tt.exitCode, tt.summary.ExitCode())
		})
	}

	s := core.Summary{Results: []core.Result{ok, failed}}
	assert.Equal(t, []string{"Syntax: bad"}, s.Errors())
}
