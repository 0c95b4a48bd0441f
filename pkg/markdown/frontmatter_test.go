package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/markdown"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Run("WithFrontmatter", func(t *testing.T) {
		src := "---\ntitle: Retry Patterns\ntags:\n  - agents\n---\n# Body\n"
		meta, body, bodyLine, err := markdown.SplitFrontmatter([]byte(src))
		require.NoError(t, err)

		assert.Equal(t, "Retry Patterns", meta["title"])
		assert.Equal(t, "# Body\n", string(body))
		assert.Equal(t, 6, bodyLine)
	})

	t.Run("WithoutFrontmatter", func(t *testing.T) {
		src := "# Just Content\n"
		meta, body, bodyLine, err := markdown.SplitFrontmatter([]byte(src))
		require.NoError(t, err)

		assert.Nil(t, meta)
		assert.Equal(t, src, string(body))
		assert.Equal(t, 1, bodyLine)
	})

	t.Run("UnclosedFrontmatter", func(t *testing.T) {
		src := "---\ntitle: Broken\n"
		_, _, _, err := markdown.SplitFrontmatter([]byte(src))
		require.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		src := "---\n: : :\n---\nbody\n"
		_, _, _, err := markdown.SplitFrontmatter([]byte(src))
		require.Error(t, err)
	})

	t.Run("CRLF", func(t *testing.T) {
		src := "---\r\ntitle: Windows\r\n---\r\nbody\r\n"
		meta, body, bodyLine, err := markdown.SplitFrontmatter([]byte(src))
		require.NoError(t, err)

		assert.Equal(t, "Windows", meta["title"])
		assert.Equal(t, "body\r\n", string(body))
		assert.Equal(t, 4, bodyLine)
	})

	t.Run("DashesInsideValueNotADelimiter", func(t *testing.T) {
		src := "---\ntitle: \"a --- b\"\n---\nbody\n"
		meta, _, _, err := markdown.SplitFrontmatter([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, "a --- b", meta["title"])
	})
}

func TestRenderFrontmatter(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		meta := map[string]any{"title": "Checkpointing"}
		out, err := markdown.RenderFrontmatter(meta, "# Checkpointing\n")
		require.NoError(t, err)

		got, body, _, err := markdown.SplitFrontmatter(out)
		require.NoError(t, err)
		assert.Equal(t, "Checkpointing", got["title"])
		assert.Equal(t, "# Checkpointing\n", string(body))
	})

	t.Run("NoMetadata", func(t *testing.T) {
		out, err := markdown.RenderFrontmatter(nil, "bare body")
		require.NoError(t, err)
		assert.Equal(t, "bare body", string(out))
	})
}
