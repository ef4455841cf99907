package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	res := core.NewResult("Directories")
	res.OK("Directory src exists")
	res.Fail("Directory tests missing")
	res.Warn("Could not create data")
	res.Fix("Created docs")

	r.Start("tutorcheck fix")
	r.Step("Checking directories")
	r.Result(res)

	out := buf.String()
	assert.Contains(t, out, "🤖 tutorcheck fix\n"+strings.Repeat("=", BannerWidth)+"\n")
	assert.Contains(t, out, "🔍 Checking directories...\n")
	assert.Contains(t, out, "✅ Directory src exists\n")
	assert.Contains(t, out, "❌ Directory tests missing\n")
	assert.Contains(t, out, "⚠️  Could not create data\n")
	assert.Contains(t, out, "🔧 Created docs\n")
	assert.NotContains(t, out, "\x1b[", "no color codes when writing to a buffer")
}

func TestSummary(t *testing.T) {
	failing := core.NewResult("Syntax")
	failing.Fail("Syntax errors found")
	fixed := core.NewResult("Formatting")
	fixed.Fix("Applied black")
	clean := core.NewResult("YAML")
	clean.OK("ci.yml is valid YAML")

	tests := []struct {
		name    string
		summary core.Summary
		want    []string
		notWant []string
	}{
		{
			name:    "All Passed",
			summary: core.Summary{Results: []core.Result{clean}},
			want:    []string{"🎉 All checks passed!"},
			notWant: []string{"issues found"},
		},
		{
			name:    "Failures Listed",
			summary: core.Summary{Results: []core.Result{failing, clean}},
			want:    []string{"❌ Syntax issues found", "Found 1 errors:", "  - Syntax: Syntax errors found", "Some checks failed"},
		},
		{
			name:    "Fixed And Committed",
			summary: core.Summary{Results: []core.Result{fixed}, FailOnFix: true, Committed: true},
			want:    []string{"🔧 Formatting issues were fixed", "Fixes committed and pushed"},
		},
		{
			name:    "Fixed Not Committed",
			summary: core.Summary{Results: []core.Result{fixed}},
			want:    []string{"Fixes were applied"},
		},
		{
			name:    "Informational",
			summary: core.Summary{Results: []core.Result{failing}, Informational: true},
			want:    []string{"Report complete"},
			notWant: []string{"Some checks failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).Summary(tt.summary)
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestFinish(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Finish("Automated checker")
	assert.True(t, strings.HasSuffix(buf.String(), "🏁 Automated checker completed\n"))
}
