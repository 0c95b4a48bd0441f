// Package toc generates and verifies the table of contents of an index
// document. The TOC lives between HTML comment markers so regeneration
// never touches surrounding prose.
package toc

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/shelf/pkg/lint"
)

// Markers delimiting the managed region in the index document.
const (
	BeginMarker = "<!-- toc:begin -->"
	EndMarker   = "<!-- toc:end -->"
)

// Entry is one line of the table of contents.
type Entry struct {
	Title string
	Path  string
}

// Entries derives TOC entries from the scanned corpus, in lexicographic
// path order. Titles come from frontmatter, falling back to the first
// level-1 heading, then to the file stem.
func Entries(c *lint.Corpus, articlesDir string) []Entry {
	prefix := strings.TrimSuffix(articlesDir, "/") + "/"

	var entries []Entry
	for _, p := range c.Paths() {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		doc := c.Docs[p]
		if doc.ParseErr != nil {
			continue
		}
		entries = append(entries, Entry{Title: title(doc), Path: p})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func title(doc *lint.Document) string {
	if t, ok := doc.Metadata["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	for _, h := range doc.Structure.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	stem := path.Base(doc.Path)
	return strings.TrimSuffix(stem, path.Ext(stem))
}

// Render produces the Markdown list for the managed region.
func Render(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- [%s](%s)\n", e.Title, e.Path)
	}
	return sb.String()
}

// Update replaces the managed region of the index document with the rendered
// entries. It reports whether the content changed, and fails when the
// markers are missing or out of order.
func Update(index []byte, entries []Entry) ([]byte, bool, error) {
	content := string(index)

	begin := strings.Index(content, BeginMarker)
	end := strings.Index(content, EndMarker)
	if begin == -1 || end == -1 {
		return nil, false, fmt.Errorf("index document is missing the %s / %s markers", BeginMarker, EndMarker)
	}
	if end < begin {
		return nil, false, fmt.Errorf("%s appears before %s", EndMarker, BeginMarker)
	}

	head := content[:begin+len(BeginMarker)]
	tail := content[end:]

	updated := head + "\n" + Render(entries) + tail
	return []byte(updated), updated != content, nil
}

// Check reports whether the index document's managed region is out of date.
func Check(index []byte, entries []Entry) (bool, error) {
	_, changed, err := Update(index, entries)
	return changed, err
}
