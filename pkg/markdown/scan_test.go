package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/markdown"
)

const sample = `# Agent Orchestration

Some intro text with a [relative link](articles/retries.md) and an
[external link](https://example.com/docs) plus an [anchor](#setup).

## Setup

![diagram](img/flow.png)

` + "```go\nfmt.Println(\"hi\")\n```" + `

` + "```mermaid\nflowchart TD\n  A --> B\n```" + `

` + "```\nno language here\n```" + `

## Setup
`

func TestScan_Headings(t *testing.T) {
	s := markdown.Scan([]byte(sample), 0)

	require.Len(t, s.Headings, 3)
	assert.Equal(t, 1, s.Headings[0].Level)
	assert.Equal(t, "Agent Orchestration", s.Headings[0].Text)
	assert.Equal(t, "agent-orchestration", s.Headings[0].Slug)
	assert.Equal(t, 1, s.Headings[0].Line)

	// Duplicate headings get numbered slugs.
	assert.Equal(t, "setup", s.Headings[1].Slug)
	assert.Equal(t, "setup-1", s.Headings[2].Slug)

	frags := s.Fragments()
	assert.True(t, frags["setup"])
	assert.True(t, frags["setup-1"])
	assert.False(t, frags["missing"])
}

func TestScan_Links(t *testing.T) {
	s := markdown.Scan([]byte(sample), 0)

	var rel, ext, frag, img int
	for _, l := range s.Links {
		switch {
		case l.Image:
			img++
			assert.Equal(t, markdown.LinkRelative, l.Kind)
			assert.Equal(t, "img/flow.png", l.Path)
		case l.Kind == markdown.LinkRelative:
			rel++
			assert.Equal(t, "articles/retries.md", l.Path)
			assert.Equal(t, 3, l.Line)
		case l.Kind == markdown.LinkExternal:
			ext++
		case l.Kind == markdown.LinkFragment:
			frag++
			assert.Equal(t, "setup", l.Fragment)
		}
	}
	assert.Equal(t, 1, rel)
	assert.Equal(t, 1, ext)
	assert.Equal(t, 1, frag)
	assert.Equal(t, 1, img)
}

func TestScan_Fences(t *testing.T) {
	s := markdown.Scan([]byte(sample), 0)

	require.Len(t, s.Fences, 3)
	assert.Equal(t, "go", s.Fences[0].Lang)
	assert.Equal(t, "mermaid", s.Fences[1].Lang)
	assert.Contains(t, s.Fences[1].Body, "flowchart TD")
	assert.Equal(t, "", s.Fences[2].Lang)
}

func TestScan_LineOffset(t *testing.T) {
	s := markdown.Scan([]byte("# Title\n"), 4)
	require.Len(t, s.Headings, 1)
	assert.Equal(t, 5, s.Headings[0].Line)
}

func TestScan_InfoStringWithAttributes(t *testing.T) {
	src := "```go {linenos=true}\npackage main\n```\n"
	s := markdown.Scan([]byte(src), 0)
	require.Len(t, s.Fences, 1)
	assert.Equal(t, "go", s.Fences[0].Lang)
	assert.Equal(t, "go {linenos=true}", s.Fences[0].Info)
	assert.Equal(t, 1, s.Fences[0].Line)
}

func TestScan_IndentedCodeIgnored(t *testing.T) {
	src := "para\n\n    indented code\n"
	s := markdown.Scan([]byte(src), 0)
	assert.Empty(t, s.Fences)
}

func TestScan_RelativeWithFragment(t *testing.T) {
	src := "[x](../a.md#sec)\n"
	s := markdown.Scan([]byte(src), 0)
	require.Len(t, s.Links, 1)
	assert.Equal(t, markdown.LinkRelative, s.Links[0].Kind)
	assert.Equal(t, "../a.md", s.Links[0].Path)
	assert.Equal(t, "sec", s.Links[0].Fragment)
}

func TestScan_ProtocolRelativeIsExternal(t *testing.T) {
	src := "[x](//cdn.example.com/a.js)\n"
	s := markdown.Scan([]byte(src), 0)
	require.Len(t, s.Links, 1)
	assert.Equal(t, markdown.LinkExternal, s.Links[0].Kind)
}

func TestScan_Empty(t *testing.T) {
	s := markdown.Scan(nil, 0)
	assert.Empty(t, s.Headings)
	assert.Empty(t, s.Links)
	assert.Empty(t, s.Fences)
	assert.Zero(t, s.Words)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Agent Orchestration", "agent-orchestration"},
		{"What's New?", "whats-new"},
		{"  spaced  out  ", "spaced--out"},
		{"C++ & Go", "c--go"},
		{"under_score", "under_score"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, markdown.Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
