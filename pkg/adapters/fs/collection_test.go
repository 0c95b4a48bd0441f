package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/adapters/fs"
	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
)

func newCollection(t *testing.T, cfg fs.Config) *fs.Collection {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = t.TempDir()
	}
	c := fs.NewCollection(cfg)
	require.NoError(t, c.Initialize(context.Background()))
	return c
}

func TestCollection_SaveAndGet(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx := context.Background()

	err := c.Save(ctx, core.Article{
		ID:       "articles/retries",
		Content:  "# Retry Patterns\n",
		Metadata: core.Metadata{"title": "Retry Patterns"},
	})
	require.NoError(t, err)

	// File on disk carries frontmatter.
	data, err := os.ReadFile(filepath.Join(c.Root(), "articles", "retries.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "---\ntitle: Retry Patterns\n---\n")

	a, err := c.Get(ctx, "articles/retries")
	require.NoError(t, err)
	assert.Equal(t, "articles/retries", a.ID)
	assert.Equal(t, "# Retry Patterns\n", a.Content)
	assert.Equal(t, "Retry Patterns", a.Title())
}

func TestCollection_GetNotFound(t *testing.T) {
	c := newCollection(t, fs.Config{})
	_, err := c.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestCollection_List(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, core.Article{ID: "README", Content: "# Index\n"}))
	require.NoError(t, c.Save(ctx, core.Article{
		ID:       "articles/a",
		Content:  "# A\n",
		Metadata: core.Metadata{"title": "A"},
	}))

	articles, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	// Second List hits the cache: metadata survives, content is not reloaded.
	articles, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	var found bool
	for _, a := range articles {
		if a.ID == "articles/a" {
			found = true
			assert.Equal(t, "A", a.Title())
		}
	}
	assert.True(t, found)

	// Cache file was written under the system dir.
	_, err = os.Stat(filepath.Join(c.Root(), ".shelf", "index.json"))
	assert.NoError(t, err)
}

func TestCollection_ListExcludes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.md"), []byte("# K\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "wip.md"), []byte("# W\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not markdown"), 0644))

	c := newCollection(t, fs.Config{Path: dir, Exclude: []string{"drafts/**"}})

	articles, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "keep", articles[0].ID)
}

func TestCollection_Delete(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, core.Article{ID: "doomed", Content: "x"}))
	require.NoError(t, c.Delete(ctx, "doomed"))

	err := c.Delete(ctx, "doomed")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestCollection_ReadOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0644))

	c := newCollection(t, fs.Config{Path: dir, ReadOnly: true})
	ctx := context.Background()

	err := c.Save(ctx, core.Article{ID: "nope", Content: "x"})
	assert.True(t, errors.Is(err, core.ErrReadOnly))

	err = c.Delete(ctx, "a")
	assert.True(t, errors.Is(err, core.ErrReadOnly))

	// Reads still work, and the cache is not persisted.
	articles, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 1)

	_, err = os.Stat(filepath.Join(dir, ".shelf"))
	assert.True(t, os.IsNotExist(err))
}

func TestCollection_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	c := fs.NewCollection(fs.Config{Path: missing, MustExist: true})
	err := c.Initialize(context.Background())
	require.Error(t, err)
}

func TestCollection_LintSource(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, core.Article{ID: "articles/a", Content: "# A\n"}))
	require.NoError(t, os.WriteFile(filepath.Join(c.Root(), "img.png"), []byte{0x89}, 0644))

	paths, err := c.Paths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"articles/a.md"}, paths)

	data, err := c.ReadFile("articles/a.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# A")

	assert.True(t, c.Exists("img.png"))
	assert.False(t, c.Exists("missing.png"))
	assert.False(t, c.Exists("../escape"))
}

func TestCollection_IDValidation(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx := context.Background()

	err := c.Save(ctx, core.Article{ID: "../outside", Content: "x"})
	require.Error(t, err)

	_, err = c.Get(ctx, "/absolute")
	require.Error(t, err)
}

func TestCollection_GitignoreForSystemDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))

	newCollection(t, fs.Config{Path: dir})

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".shelf/")
}

func TestCollection_WriteFile(t *testing.T) {
	c := newCollection(t, fs.Config{})

	require.NoError(t, c.WriteFile("README.md", []byte("# Index\n")))

	data, err := c.ReadFile("README.md")
	require.NoError(t, err)
	assert.Equal(t, "# Index\n", string(data))

	err = c.WriteFile("../outside.md", []byte("x"))
	require.Error(t, err)
}

func TestCollection_Sync(t *testing.T) {
	t.Run("read-only", func(t *testing.T) {
		c := newCollection(t, fs.Config{Path: t.TempDir(), ReadOnly: true})
		err := c.Sync(context.Background())
		assert.ErrorIs(t, err, core.ErrReadOnly)
	})

	t.Run("not a repository", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git is not installed")
		}
		dir := t.TempDir()
		c := newCollection(t, fs.Config{Path: dir})

		client := git.NewClient(dir, nil)
		if client.IsRepo() {
			t.Skip("temp dir is inside a git work tree")
		}
		require.Error(t, c.Sync(context.Background()))
	})
}
