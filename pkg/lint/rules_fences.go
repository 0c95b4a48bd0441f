package lint

import (
	"errors"
	"fmt"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/mermaid"
)

// DefaultLanguages are the fence tags accepted without configuration.
// The set mirrors what commonly appears in engineering docs; collections can
// replace it entirely via shelf.yaml.
var DefaultLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "diff", "dockerfile", "go", "html",
	"java", "javascript", "json", "kotlin", "makefile", "mermaid", "php",
	"proto", "python", "ruby", "rust", "shell", "sh", "sql", "swift", "text",
	"toml", "typescript", "yaml",
}

// FenceLanguageRule checks that every fenced code block carries a recognized
// language tag.
type FenceLanguageRule struct {
	languages map[string]bool
}

// NewFenceLanguageRule creates the rule. A nil or empty list falls back to
// DefaultLanguages.
func NewFenceLanguageRule(languages []string) *FenceLanguageRule {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	set := make(map[string]bool, len(languages))
	for _, l := range languages {
		set[l] = true
	}
	return &FenceLanguageRule{languages: set}
}

func (r *FenceLanguageRule) Name() string { return "fence-language" }

func (r *FenceLanguageRule) Description() string {
	return "fenced code blocks must carry a recognized language tag"
}

func (r *FenceLanguageRule) Check(c *Corpus) []core.Finding {
	var findings []core.Finding

	for _, p := range c.Paths() {
		doc := c.Docs[p]
		if doc.ParseErr != nil {
			continue
		}

		for _, fence := range doc.Structure.Fences {
			switch {
			case fence.Lang == "":
				findings = append(findings, core.Finding{
					Rule:     r.Name(),
					Severity: core.SeverityWarning,
					Path:     p,
					Line:     fence.Line,
					Message:  "code fence is missing a language tag",
				})
			case !r.languages[fence.Lang]:
				findings = append(findings, core.Finding{
					Rule:     r.Name(),
					Severity: core.SeverityWarning,
					Path:     p,
					Line:     fence.Line,
					Message:  fmt.Sprintf("unrecognized language tag %q", fence.Lang),
				})
			}
		}
	}

	return findings
}

// MermaidRule validates every ```mermaid block with the structural checker.
type MermaidRule struct{}

// NewMermaidRule creates the rule.
func NewMermaidRule() *MermaidRule { return &MermaidRule{} }

func (r *MermaidRule) Name() string { return "mermaid-syntax" }

func (r *MermaidRule) Description() string {
	return "mermaid diagram blocks must parse"
}

func (r *MermaidRule) Check(c *Corpus) []core.Finding {
	var findings []core.Finding

	for _, p := range c.Paths() {
		doc := c.Docs[p]
		if doc.ParseErr != nil {
			continue
		}

		for _, fence := range doc.Structure.Fences {
			if fence.Lang != "mermaid" {
				continue
			}
			if err := mermaid.Validate(fence.Body); err != nil {
				line := fence.Line
				var syntax *mermaid.SyntaxError
				if errors.As(err, &syntax) && syntax.Line > 0 {
					// SyntaxError lines are relative to the diagram body,
					// which starts on the line after the fence.
					line = fence.Line + syntax.Line
				}
				findings = append(findings, core.Finding{
					Rule:     r.Name(),
					Severity: core.SeverityError,
					Path:     p,
					Line:     line,
					Message:  err.Error(),
				})
			}
		}
	}

	return findings
}
