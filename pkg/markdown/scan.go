// Package markdown provides structural scanning of Markdown documents:
// frontmatter extraction and a goldmark-based walk collecting headings,
// links, images and fenced code blocks with line positions.
package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// LinkKind classifies a link destination.
type LinkKind string

const (
	// LinkRelative points at a file relative to the document.
	LinkRelative LinkKind = "relative"
	// LinkExternal carries a scheme (http, https, mailto, ...).
	LinkExternal LinkKind = "external"
	// LinkFragment is an in-document anchor ("#section").
	LinkFragment LinkKind = "fragment"
)

// Heading is a heading with its GitHub anchor slug.
type Heading struct {
	Level int
	Text  string
	Slug  string
	Line  int
}

// Link is a link or image reference found in the document.
type Link struct {
	Destination string
	Kind        LinkKind
	Image       bool
	Line        int

	// Path and Fragment are the split parts of a relative destination
	// ("../foo.md#bar" -> "../foo.md", "bar"). For fragment-only links,
	// Path is empty.
	Path     string
	Fragment string
}

// Fence is a fenced code block.
type Fence struct {
	// Info is the full info string ("go {linenos=true}").
	Info string
	// Lang is the first word of the info string ("go"). Empty for bare fences.
	Lang string
	Line int
	Body string
}

// Structure is the result of scanning a Markdown body.
type Structure struct {
	Headings []Heading
	Links    []Link
	Fences   []Fence
	Words    int
}

// Fragments returns the set of valid anchor targets in the document.
func (s *Structure) Fragments() map[string]bool {
	frags := make(map[string]bool, len(s.Headings))
	for _, h := range s.Headings {
		frags[h.Slug] = true
	}
	return frags
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Scan parses the Markdown body and collects its structure.
// lineOffset is added to every reported line, so callers that stripped a
// frontmatter block can pass the number of lines removed (bodyLine - 1).
func Scan(source []byte, lineOffset int) *Structure {
	s := &Structure{}
	idx := newLineIndex(source)
	slugs := newSlugger()

	root := md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			txt := nodeText(node, source)
			s.Headings = append(s.Headings, Heading{
				Level: node.Level,
				Text:  txt,
				Slug:  slugs.slug(txt),
				Line:  lineOffset + idx.line(blockOffset(node)),
			})

		case *ast.FencedCodeBlock:
			info := ""
			line := 0
			if node.Info != nil {
				info = string(node.Info.Segment.Value(source))
				// The info string sits on the fence line itself.
				line = lineOffset + idx.line(node.Info.Segment.Start)
			} else if node.Lines().Len() > 0 {
				// Bare fence: report the first content line minus the fence.
				line = lineOffset + idx.line(node.Lines().At(0).Start) - 1
			}
			var body bytes.Buffer
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				body.Write(seg.Value(source))
			}
			s.Fences = append(s.Fences, Fence{
				Info: info,
				Lang: firstWord(info),
				Line: line,
				Body: body.String(),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Link:
			s.Links = append(s.Links, newLink(string(node.Destination), false, linkLine(node, source, idx, lineOffset)))

		case *ast.Image:
			s.Links = append(s.Links, newLink(string(node.Destination), true, linkLine(node, source, idx, lineOffset)))

		case *ast.AutoLink:
			s.Links = append(s.Links, newLink(string(node.URL(source)), false, linkLine(node, source, idx, lineOffset)))

		case *ast.Text:
			s.Words += len(bytes.Fields(node.Segment.Value(source)))
		}

		return ast.WalkContinue, nil
	})

	return s
}

// newLink classifies a destination and splits relative paths from fragments.
func newLink(dest string, image bool, line int) Link {
	l := Link{Destination: dest, Image: image, Line: line}

	switch {
	case strings.HasPrefix(dest, "#"):
		l.Kind = LinkFragment
		l.Fragment = strings.TrimPrefix(dest, "#")
	case hasScheme(dest):
		l.Kind = LinkExternal
	default:
		l.Kind = LinkRelative
		l.Path = dest
		if i := strings.Index(dest, "#"); i >= 0 {
			l.Path = dest[:i]
			l.Fragment = dest[i+1:]
		}
	}
	return l
}

// hasScheme reports whether the destination starts with a URI scheme
// ("https:", "mailto:") or is protocol-relative ("//cdn.example.com").
func hasScheme(dest string) bool {
	if strings.HasPrefix(dest, "//") {
		return true
	}
	for i, r := range dest {
		switch {
		case r == ':':
			return i > 0
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			continue
		case i > 0 && ((r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'):
			continue
		default:
			return false
		}
	}
	return false
}

func firstWord(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// nodeText collects the plain text of a node's descendants.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, source))
		}
	}
	return sb.String()
}

// blockOffset returns the byte offset of the first line of a block node.
func blockOffset(n ast.Node) int {
	if n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	return 0
}

// linkLine approximates the source line of an inline node: goldmark does not
// track inline positions, so we anchor at the enclosing block and refine by
// searching for the destination within the block's span.
func linkLine(n ast.Node, source []byte, idx *lineIndex, lineOffset int) int {
	block := n.Parent()
	for block != nil && (block.Type() != ast.TypeBlock || block.Lines().Len() == 0) {
		block = block.Parent()
	}
	if block == nil {
		return 0
	}

	lines := block.Lines()
	start := lines.At(0).Start
	stop := lines.At(lines.Len() - 1).Stop

	var needle []byte
	switch node := n.(type) {
	case *ast.Link:
		needle = node.Destination
	case *ast.Image:
		needle = node.Destination
	case *ast.AutoLink:
		needle = node.URL(source)
	}

	if len(needle) > 0 && stop <= len(source) {
		if i := bytes.Index(source[start:stop], needle); i >= 0 {
			return lineOffset + idx.line(start+i)
		}
	}
	return lineOffset + idx.line(start)
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) line(offset int) int {
	// First line whose start is beyond the offset; the offset belongs to
	// the line before it.
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
	return i
}
