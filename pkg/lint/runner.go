package lint

import (
	"context"
	"log/slog"

	"github.com/aretw0/shelf/pkg/core"
)

// Rule is a single content-validation check over a corpus.
type Rule interface {
	// Name is the stable identifier used in findings and configuration.
	Name() string
	// Description is a one-line summary for `shelf lint --list-rules`.
	Description() string
	// Check inspects the corpus and returns findings with the rule's
	// default severity. The runner may remap severities afterwards.
	Check(c *Corpus) []core.Finding
}

// parseRule is the pseudo-rule name used for documents that failed to scan.
const parseRule = "frontmatter-parse"

// Runner executes rules over a corpus, applying configuration.
type Runner struct {
	rules      []Rule
	disabled   map[string]bool
	severities map[string]core.Severity
	logger     *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDisabled turns the named rules off.
func WithDisabled(names ...string) RunnerOption {
	return func(r *Runner) {
		for _, n := range names {
			r.disabled[n] = true
		}
	}
}

// WithSeverity overrides the default severity of a rule's findings.
func WithSeverity(rule string, sev core.Severity) RunnerOption {
	return func(r *Runner) {
		r.severities[rule] = sev
	}
}

// WithLogger sets the logger used for per-rule progress.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over the given rules.
func NewRunner(rules []Rule, opts ...RunnerOption) *Runner {
	r := &Runner{
		rules:      rules,
		disabled:   make(map[string]bool),
		severities: make(map[string]core.Severity),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRules returns the built-in rule set with default parameters.
func DefaultRules() []Rule {
	return []Rule{
		NewDeadLinksRule(),
		NewFenceLanguageRule(nil),
		NewMermaidRule(),
		NewFrontmatterRule(nil),
		NewSingleH1Rule(),
		NewTOCRule("articles"),
	}
}

// Rules returns the enabled rules in execution order.
func (r *Runner) Rules() []Rule {
	var enabled []Rule
	for _, rule := range r.rules {
		if !r.disabled[rule.Name()] {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// Run executes all enabled rules and returns the sorted report.
func (r *Runner) Run(ctx context.Context, c *Corpus) (*core.Report, error) {
	report := &core.Report{Checked: len(c.Docs)}

	// Documents that failed to scan are findings themselves, and rules
	// cannot inspect them.
	for _, p := range c.Paths() {
		if err := c.Docs[p].ParseErr; err != nil {
			report.Add(core.Finding{
				Rule:     parseRule,
				Severity: r.severity(parseRule, core.SeverityError),
				Path:     p,
				Message:  err.Error(),
			})
		}
	}

	for _, rule := range r.Rules() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		findings := rule.Check(c)
		if r.logger != nil {
			r.logger.Debug("rule finished", "rule", rule.Name(), "findings", len(findings))
		}

		for i := range findings {
			findings[i].Severity = r.severity(rule.Name(), findings[i].Severity)
		}
		report.Add(findings...)
	}

	report.Sort()
	return report, nil
}

func (r *Runner) severity(rule string, def core.Severity) core.Severity {
	if sev, ok := r.severities[rule]; ok {
		return sev
	}
	return def
}
