package lint

import (
	"fmt"
	"strings"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/markdown"
)

// TOCRule checks that every article under the articles directory is linked
// from the index document. Dangling index links are covered by dead-links;
// this rule covers the opposite direction (orphaned articles).
type TOCRule struct {
	articlesDir string
}

// NewTOCRule creates the rule for the given articles directory
// (slash-separated, relative to the collection root).
func NewTOCRule(articlesDir string) *TOCRule {
	return &TOCRule{articlesDir: strings.TrimSuffix(articlesDir, "/")}
}

func (r *TOCRule) Name() string { return "toc-sync" }

func (r *TOCRule) Description() string {
	return "every article must be linked from the index document"
}

func (r *TOCRule) Check(c *Corpus) []core.Finding {
	index, ok := c.Docs[c.Index]
	if !ok {
		return []core.Finding{{
			Rule:     r.Name(),
			Severity: core.SeverityError,
			Path:     c.Index,
			Message:  "index document not found",
		}}
	}
	if index.ParseErr != nil {
		return nil // reported by the runner
	}

	// Collect everything the index links to, resolved against the root.
	linked := make(map[string]bool)
	for _, link := range index.Structure.Links {
		if link.Kind != markdown.LinkRelative {
			continue
		}
		if resolved, ok := c.Resolve(c.Index, link.Path); ok {
			linked[resolved] = true
		}
	}

	var findings []core.Finding
	prefix := r.articlesDir + "/"
	for _, p := range c.Paths() {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if !linked[p] {
			findings = append(findings, core.Finding{
				Rule:     r.Name(),
				Severity: core.SeverityWarning,
				Path:     p,
				Message:  fmt.Sprintf("article is not linked from %s", c.Index),
			})
		}
	}

	return findings
}
