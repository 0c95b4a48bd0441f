// Package lint runs content-validation rules over a collection of Markdown
// articles: link resolution, code fence language tags, Mermaid diagram
// syntax, frontmatter requirements and table-of-contents drift.
package lint

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/markdown"
)

// Source provides raw document access for corpus construction.
// The filesystem adapter implements it; tests use in-memory maps.
type Source interface {
	// Paths returns the slash-separated relative paths of all Markdown
	// documents in the collection (e.g. "README.md", "articles/retries.md").
	Paths(ctx context.Context) ([]string, error)

	// ReadFile returns the raw bytes of a document by relative path.
	ReadFile(rel string) ([]byte, error)

	// Exists reports whether any file (Markdown or asset) exists at the
	// relative path.
	Exists(rel string) bool
}

// Document is one scanned article inside a Corpus.
type Document struct {
	Path      string
	Metadata  core.Metadata
	Structure *markdown.Structure

	// ParseErr is set when the document could not be scanned (e.g. broken
	// frontmatter). Rules skip such documents; the runner reports them.
	ParseErr error
}

// Corpus is the unit rules operate on: all scanned documents plus an
// existence oracle for non-article assets (images, licenses).
type Corpus struct {
	// Index is the relative path of the index document, usually "README.md".
	Index string

	Docs map[string]*Document

	// Exists resolves arbitrary relative paths against the collection root.
	Exists func(rel string) bool
}

// BuildCorpus scans every document the source exposes.
func BuildCorpus(ctx context.Context, src Source, index string) (*Corpus, error) {
	paths, err := src.Paths(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate documents: %w", err)
	}

	c := &Corpus{
		Index:  index,
		Docs:   make(map[string]*Document, len(paths)),
		Exists: src.Exists,
	}

	for _, p := range paths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		data, err := src.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}

		doc := &Document{Path: p}
		meta, body, bodyLine, err := markdown.SplitFrontmatter(data)
		if err != nil {
			doc.ParseErr = err
		} else {
			doc.Metadata = meta
			doc.Structure = markdown.Scan(body, bodyLine-1)
		}
		c.Docs[p] = doc
	}

	return c, nil
}

// Paths returns the document paths in sorted order for deterministic runs.
func (c *Corpus) Paths() []string {
	paths := make([]string, 0, len(c.Docs))
	for p := range c.Docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Resolve joins a link target against the directory of the referencing
// document. It returns false when the target escapes the collection root.
func (c *Corpus) Resolve(from, target string) (string, bool) {
	resolved := path.Clean(path.Join(path.Dir(from), target))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}

// exists checks both scanned documents and raw files.
func (c *Corpus) exists(rel string) bool {
	if _, ok := c.Docs[rel]; ok {
		return true
	}
	if c.Exists != nil {
		return c.Exists(rel)
	}
	return false
}
