// Package report prints pipeline progress and results for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tutorcheck/pkg/core"
	"github.com/charmbracelet/lipgloss"
)

// BannerWidth is the width of the separator line.
const BannerWidth = 60

var markers = map[core.Level]string{
	core.LevelOK:    "✅",
	core.LevelError: "❌",
	core.LevelWarn:  "⚠️ ",
	core.LevelFix:   "🔧",
	core.LevelInfo:  "ℹ️ ",
}

// Reporter writes styled report lines to an output stream.
// Colors are dropped automatically when the stream is not a terminal.
type Reporter struct {
	w io.Writer

	title  lipgloss.Style
	step   lipgloss.Style
	levels map[core.Level]lipgloss.Style
	dim    lipgloss.Style
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:     w,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		step:  r.NewStyle().Foreground(lipgloss.Color("45")),
		levels: map[core.Level]lipgloss.Style{
			core.LevelOK:    r.NewStyle().Foreground(lipgloss.Color("46")),
			core.LevelError: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			core.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("226")),
			core.LevelFix:   r.NewStyle().Foreground(lipgloss.Color("208")),
			core.LevelInfo:  r.NewStyle(),
		},
		dim: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (r *Reporter) println(s string) {
	fmt.Fprintln(r.w, s)
}

// Banner prints the separator line.
func (r *Reporter) Banner() {
	r.println(r.dim.Render(strings.Repeat("=", BannerWidth)))
}

// Start prints the pipeline title followed by a banner.
func (r *Reporter) Start(title string) {
	r.println(r.title.Render("🤖 " + title))
	r.Banner()
}

// Step announces a step.
func (r *Reporter) Step(title string) {
	r.println(r.step.Render("🔍 " + title + "..."))
}

// Line prints a single message with the marker of its level.
func (r *Reporter) Line(level core.Level, msg string) {
	style, ok := r.levels[level]
	if !ok {
		style = r.levels[core.LevelInfo]
	}
	marker := markers[level]
	if marker == "" {
		r.println(style.Render(msg))
		return
	}
	r.println(style.Render(marker + " " + msg))
}

// Result prints every entry of res in order.
func (r *Reporter) Result(res core.Result) {
	for _, e := range res.Entries {
		r.Line(e.Level, e.Message)
	}
}

// Summary prints the per-step outcome and the overall verdict.
func (r *Reporter) Summary(s core.Summary) {
	r.println("")
	r.Banner()
	for _, res := range s.Results {
		switch {
		case !res.Passed():
			r.Line(core.LevelError, fmt.Sprintf("%s issues found", res.Name))
		case res.Fixed:
			r.Line(core.LevelFix, fmt.Sprintf("%s issues were fixed", res.Name))
		case len(res.Warnings()) > 0:
			r.Line(core.LevelWarn, fmt.Sprintf("%s passed with %d warnings", res.Name, len(res.Warnings())))
		}
	}

	errs := s.Errors()
	if len(errs) > 0 {
		r.println("")
		r.Line(core.LevelError, fmt.Sprintf("Found %d errors:", len(errs)))
		for _, e := range errs {
			r.println(r.levels[core.LevelError].Render("  - " + e))
		}
	}

	r.Banner()
	switch {
	case s.Informational:
		r.Line(core.LevelInfo, "Report complete")
	case s.IssuesFound() && s.Committed:
		r.Line(core.LevelOK, "Fixes committed and pushed. CI/CD should retry.")
	case s.Failed():
		r.Line(core.LevelError, "Some checks failed. Please fix the issues above.")
	case s.Fixed():
		r.Line(core.LevelFix, "Fixes were applied. Review and commit the changes.")
	default:
		r.println(r.levels[core.LevelOK].Render("🎉 All checks passed!"))
	}
}

// Finish prints the closing banner.
func (r *Reporter) Finish(title string) {
	r.Banner()
	r.println(r.title.Render("🏁 " + title + " completed"))
}
