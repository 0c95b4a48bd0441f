package lint

import (
	"fmt"
	"net/url"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/markdown"
)

// DeadLinksRule verifies that every relative link and image resolves to a
// file on disk, and that fragments resolve to a heading anchor in the target
// document. External destinations are skipped.
type DeadLinksRule struct{}

// NewDeadLinksRule creates the rule.
func NewDeadLinksRule() *DeadLinksRule { return &DeadLinksRule{} }

func (r *DeadLinksRule) Name() string { return "dead-links" }

func (r *DeadLinksRule) Description() string {
	return "relative links and anchors must resolve"
}

func (r *DeadLinksRule) Check(c *Corpus) []core.Finding {
	var findings []core.Finding

	for _, p := range c.Paths() {
		doc := c.Docs[p]
		if doc.ParseErr != nil {
			continue
		}

		for _, link := range doc.Structure.Links {
			switch link.Kind {
			case markdown.LinkExternal:
				continue

			case markdown.LinkFragment:
				if !doc.Structure.Fragments()[link.Fragment] {
					findings = append(findings, r.finding(p, link.Line,
						fmt.Sprintf("broken anchor %q", "#"+link.Fragment)))
				}

			case markdown.LinkRelative:
				findings = append(findings, r.checkRelative(c, doc, link)...)
			}
		}
	}

	return findings
}

func (r *DeadLinksRule) checkRelative(c *Corpus, doc *Document, link markdown.Link) []core.Finding {
	target := link.Path
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	resolved, ok := c.Resolve(doc.Path, target)
	if !ok {
		return []core.Finding{r.finding(doc.Path, link.Line,
			fmt.Sprintf("link %q escapes the collection root", link.Destination))}
	}

	if !c.exists(resolved) {
		return []core.Finding{r.finding(doc.Path, link.Line,
			fmt.Sprintf("broken link %q (%s does not exist)", link.Destination, resolved))}
	}

	// Fragment against another document: only verifiable when the target is
	// a scanned Markdown document.
	if link.Fragment != "" {
		if targetDoc, isDoc := c.Docs[resolved]; isDoc && targetDoc.ParseErr == nil {
			if !targetDoc.Structure.Fragments()[link.Fragment] {
				return []core.Finding{r.finding(doc.Path, link.Line,
					fmt.Sprintf("broken anchor %q in %s", "#"+link.Fragment, resolved))}
			}
		}
	}

	return nil
}

func (r *DeadLinksRule) finding(path string, line int, msg string) core.Finding {
	return core.Finding{
		Rule:     r.Name(),
		Severity: core.SeverityError,
		Path:     path,
		Line:     line,
		Message:  msg,
	}
}
