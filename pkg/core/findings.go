package core

import (
	"fmt"
	"sort"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity: %q", s)
}

// Finding is a single diagnostic produced by a lint rule.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// String renders the finding in the canonical "path:line: [severity] rule: message" form.
func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d: [%s] %s: %s", f.Path, f.Line, f.Severity, f.Rule, f.Message)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", f.Path, f.Severity, f.Rule, f.Message)
}

// Report aggregates the findings of a lint run.
type Report struct {
	Findings []Finding `json:"findings"`
	Checked  int       `json:"checked"` // number of documents examined
}

// Add appends findings to the report.
func (r *Report) Add(fs ...Finding) {
	r.Findings = append(r.Findings, fs...)
}

// Sort orders findings by (path, line, rule) for stable output.
func (r *Report) Sort() {
	sort.Slice(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any finding is an error.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}
