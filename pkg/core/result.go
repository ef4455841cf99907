// Package core holds the domain types shared by every check: the per-step
// Result and the aggregated Summary of a pipeline run.
package core

import (
	"fmt"
	"strings"
)

// Level classifies a single line of a check's report.
type Level string

const (
	LevelOK    Level = "OK"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelFix   Level = "FIX"
	LevelInfo  Level = "INFO"
)

// Severity decides how a detected condition is reported.
// The same condition can be a hard failure for one check and a warning for another.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseSeverity maps a configuration string to a Severity.
// Anything that is not "warning" (case-insensitive) is treated as an error.
func ParseSeverity(s string) Severity {
	if strings.EqualFold(strings.TrimSpace(s), string(SeverityWarning)) {
		return SeverityWarning
	}
	return SeverityError
}

// Entry is one ordered, human-readable line of a Result.
type Entry struct {
	Level   Level
	Message string
}

// Result is the outcome of a single check.
type Result struct {
	Name    string
	Entries []Entry
	// Fixed reports that the check changed files on disk.
	Fixed bool
}

// NewResult creates an empty Result for the named check.
func NewResult(name string) Result {
	return Result{Name: name}
}

func (r *Result) add(level Level, format string, args ...any) {
	r.Entries = append(r.Entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// OK records a success line.
func (r *Result) OK(format string, args ...any) { r.add(LevelOK, format, args...) }

// Info records a neutral line.
func (r *Result) Info(format string, args ...any) { r.add(LevelInfo, format, args...) }

// Warn records a non-blocking problem.
func (r *Result) Warn(format string, args ...any) { r.add(LevelWarn, format, args...) }

// Fail records a blocking problem.
func (r *Result) Fail(format string, args ...any) { r.add(LevelError, format, args...) }

// Fix records a change applied to disk and marks the result as Fixed.
func (r *Result) Fix(format string, args ...any) {
	r.Fixed = true
	r.add(LevelFix, format, args...)
}

// Report records a problem with the given severity.
func (r *Result) Report(sev Severity, format string, args ...any) {
	if sev == SeverityWarning {
		r.Warn(format, args...)
		return
	}
	r.Fail(format, args...)
}

// Merge appends the entries of other, keeping their order.
func (r *Result) Merge(other Result) {
	r.Entries = append(r.Entries, other.Entries...)
	r.Fixed = r.Fixed || other.Fixed
}

// Passed is true when no error was recorded.
func (r Result) Passed() bool {
	for _, e := range r.Entries {
		if e.Level == LevelError {
			return false
		}
	}
	return true
}

// Errors returns the error messages in the order they were recorded.
func (r Result) Errors() []string {
	return r.messages(LevelError)
}

// Warnings returns the warning messages in the order they were recorded.
func (r Result) Warnings() []string {
	return r.messages(LevelWarn)
}

func (r Result) messages(level Level) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Summary aggregates the results of a pipeline run.
type Summary struct {
	Pipeline string
	Results  []Result
	// FailOnFix counts applied fixes as issues for the exit code.
	FailOnFix bool
	// Informational pipelines always exit 0.
	Informational bool
	// Committed is set when the auto-fix committer recorded a commit.
	Committed bool
}

// Failed is true when at least one result did not pass.
func (s Summary) Failed() bool {
	for _, r := range s.Results {
		if !r.Passed() {
			return true
		}
	}
	return false
}

// Fixed is true when at least one result changed files on disk.
func (s Summary) Fixed() bool {
	for _, r := range s.Results {
		if r.Fixed {
			return true
		}
	}
	return false
}

// IssuesFound is true when any step failed or applied a fix.
func (s Summary) IssuesFound() bool {
	return s.Failed() || s.Fixed()
}

// Errors returns every error message prefixed with its step name.
func (s Summary) Errors() []string {
	var out []string
	for _, r := range s.Results {
		for _, msg := range r.Errors() {
			out = append(out, fmt.Sprintf("%s: %s", r.Name, msg))
		}
	}
	return out
}

// ExitCode maps the summary to a process exit status.
func (s Summary) ExitCode() int {
	if s.Informational {
		return 0
	}
	if s.Failed() || (s.FailOnFix && s.Fixed()) {
		return 1
	}
	return 0
}
