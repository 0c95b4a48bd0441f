package lint

import (
	"fmt"
	"strings"

	"github.com/aretw0/shelf/pkg/core"
)

// DefaultRequiredKeys are the frontmatter keys every article must carry.
var DefaultRequiredKeys = []string{"title"}

// FrontmatterRule checks that required metadata keys are present and
// non-empty in every article. The index document is exempt: a README
// conventionally has no frontmatter.
type FrontmatterRule struct {
	required []string
}

// NewFrontmatterRule creates the rule. A nil or empty list falls back to
// DefaultRequiredKeys.
func NewFrontmatterRule(required []string) *FrontmatterRule {
	if len(required) == 0 {
		required = DefaultRequiredKeys
	}
	return &FrontmatterRule{required: required}
}

func (r *FrontmatterRule) Name() string { return "frontmatter-required" }

func (r *FrontmatterRule) Description() string {
	return "articles must carry the required frontmatter keys"
}

func (r *FrontmatterRule) Check(c *Corpus) []core.Finding {
	var findings []core.Finding

	for _, p := range c.Paths() {
		doc := c.Docs[p]
		if doc.ParseErr != nil || p == c.Index {
			continue
		}

		for _, key := range r.required {
			val, ok := doc.Metadata[key]
			missing := !ok || val == nil // "title:" with no value parses as nil
			if s, isStr := val.(string); isStr && strings.TrimSpace(s) == "" {
				missing = true
			}
			if missing {
				findings = append(findings, core.Finding{
					Rule:     r.Name(),
					Severity: core.SeverityWarning,
					Path:     p,
					Message:  fmt.Sprintf("missing frontmatter key %q", key),
				})
			}
		}
	}

	return findings
}

// SingleH1Rule checks that each document opens with exactly one level-1
// heading.
type SingleH1Rule struct{}

// NewSingleH1Rule creates the rule.
func NewSingleH1Rule() *SingleH1Rule { return &SingleH1Rule{} }

func (r *SingleH1Rule) Name() string { return "single-h1" }

func (r *SingleH1Rule) Description() string {
	return "documents must open with exactly one level-1 heading"
}

func (r *SingleH1Rule) Check(c *Corpus) []core.Finding {
	var findings []core.Finding

	for _, p := range c.Paths() {
		doc := c.Docs[p]
		if doc.ParseErr != nil {
			continue
		}

		headings := doc.Structure.Headings
		if len(headings) == 0 {
			findings = append(findings, r.finding(p, 0, "document has no headings"))
			continue
		}

		if headings[0].Level != 1 {
			findings = append(findings, r.finding(p, headings[0].Line,
				fmt.Sprintf("first heading is level %d, expected a level-1 title", headings[0].Level)))
		}

		h1 := 0
		for _, h := range headings {
			if h.Level != 1 {
				continue
			}
			h1++
			if h1 > 1 {
				findings = append(findings, r.finding(p, h.Line, "multiple level-1 headings"))
			}
		}
	}

	return findings
}

func (r *SingleH1Rule) finding(path string, line int, msg string) core.Finding {
	return core.Finding{
		Rule:     r.Name(),
		Severity: core.SeverityWarning,
		Path:     path,
		Line:     line,
		Message:  msg,
	}
}
