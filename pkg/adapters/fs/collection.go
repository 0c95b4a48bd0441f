// Package fs implements core.Collection on a local directory of Markdown
// files, with an mtime-based metadata cache and an fsnotify watcher.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/markdown"
)

// Config holds the configuration for the filesystem collection.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger

	// SystemDir is the hidden directory for the index cache (e.g. ".shelf").
	SystemDir string

	// Include and Exclude are doublestar globs matched against slash-separated
	// relative paths. An empty Include means "**/*.md".
	Include []string
	Exclude []string

	// EventBuffer is the watch event channel capacity (default 64).
	EventBuffer int

	// ErrorHandler receives runtime watcher failures that would otherwise
	// only be logged.
	ErrorHandler func(error)
}

// Collection implements core.Collection using the filesystem.
type Collection struct {
	Path   string
	config Config
	cache  *cache
}

// NewCollection creates a filesystem-backed collection.
func NewCollection(config Config) *Collection {
	if config.SystemDir == "" {
		config.SystemDir = ".shelf"
	}
	if len(config.Include) == 0 {
		config.Include = []string{"**/*.md"}
	}
	return &Collection{
		Path:   config.Path,
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
	}
}

// Root returns the collection root directory.
func (c *Collection) Root() string {
	return c.Path
}

// Initialize performs the necessary setup for the collection (mkdir,
// gitignore for the system directory).
func (c *Collection) Initialize(ctx context.Context) error {
	if c.config.MustExist || c.config.ReadOnly {
		info, err := os.Stat(c.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("collection path does not exist: %s", c.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("collection path is not a directory: %s", c.Path)
		}
		return nil
	}

	if err := os.MkdirAll(c.Path, 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	// Keep the cache out of version control when the collection lives in a
	// git repository.
	if _, err := os.Stat(filepath.Join(c.Path, ".git")); err == nil {
		if err := c.ensureIgnore(); err != nil {
			return fmt.Errorf("failed to ensure .gitignore: %w", err)
		}
	}

	return nil
}

func (c *Collection) ensureIgnore() error {
	ignorePath := filepath.Join(c.Path, ".gitignore")
	ignoreEntry := c.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString(ignoreEntry + "\n")
	return err
}

// Sync synchronizes the collection with its git remote (pull then push).
// It implements core.Syncable.
func (c *Collection) Sync(ctx context.Context) error {
	if c.config.ReadOnly {
		return core.ErrReadOnly
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	client := git.NewClient(c.Path, c.config.Logger)
	if !client.IsRepo() {
		return fmt.Errorf("path is not a git repository: %s", c.Path)
	}

	return client.Sync()
}

// filename maps an article ID to its relative file path.
func filename(id string) string {
	if strings.HasSuffix(id, ".md") {
		return id
	}
	return id + ".md"
}

// idOf maps a relative file path back to an article ID.
func idOf(relPath string) string {
	return strings.TrimSuffix(relPath, ".md")
}

// Save persists an article to disk atomically.
func (c *Collection) Save(ctx context.Context, a core.Article) error {
	if c.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateID(a.ID); err != nil {
		return err
	}

	rel := filename(a.ID)
	fullPath := filepath.Join(c.Path, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := markdown.RenderFrontmatter(a.Metadata, a.Content)
	if err != nil {
		return fmt.Errorf("failed to serialize article: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	// The cached entry is stale now; List will reparse.
	c.cache.Delete(rel)

	if c.config.Logger != nil {
		c.config.Logger.Debug("article saved", "id", a.ID, "path", rel)
	}
	return nil
}

// Get retrieves an article from disk, splitting frontmatter from body.
func (c *Collection) Get(ctx context.Context, id string) (core.Article, error) {
	if err := core.ValidateID(id); err != nil {
		return core.Article{}, err
	}

	fullPath := filepath.Join(c.Path, filepath.FromSlash(filename(id)))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Article{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Article{}, err
	}

	meta, body, _, err := markdown.SplitFrontmatter(data)
	if err != nil {
		return core.Article{}, fmt.Errorf("failed to parse article %s: %w", id, err)
	}

	return core.Article{
		ID:       idOf(filename(id)),
		Content:  string(body),
		Metadata: meta,
	}, nil
}

// List scans the collection for all articles.
//
// Strategy:
//  1. Load the metadata index from disk.
//  2. Walk the tree (skipping .git and the system dir), applying the
//     include/exclude globs.
//  3. Cache hit (same mtime): metadata-only article, no reparse.
//     Cache miss: full parse, index updated.
//  4. Prune vanished entries and persist the index.
func (c *Collection) List(ctx context.Context) ([]core.Article, error) {
	if err := c.cache.Load(); err != nil && c.config.Logger != nil {
		c.config.Logger.Debug("cache load failed, starting empty", "error", err)
	}

	var articles []core.Article
	seen := make(map[string]bool)

	err := c.walk(ctx, func(rel string, info fs.FileInfo) error {
		seen[rel] = true

		if entry, hit := c.cache.Get(rel, info.ModTime()); hit {
			articles = append(articles, core.Article{
				ID:       entry.ID,
				Metadata: entry.Metadata,
			})
			return nil
		}

		a, err := c.Get(ctx, idOf(rel))
		if err != nil {
			if c.config.Logger != nil {
				c.config.Logger.Warn("skipping unparseable article", "path", rel, "error", err)
			}
			return nil
		}

		c.cache.Set(rel, &indexEntry{
			ID:           a.ID,
			Metadata:     a.Metadata,
			LastModified: info.ModTime(),
		})

		articles = append(articles, a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.Prune(seen)
	if !c.config.ReadOnly {
		if err := c.cache.Save(); err != nil && c.config.Logger != nil {
			c.config.Logger.Debug("cache save failed", "error", err)
		}
	}

	return articles, nil
}

// Delete removes an article from disk.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if c.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateID(id); err != nil {
		return err
	}

	rel := filename(id)
	fullPath := filepath.Join(c.Path, filepath.FromSlash(rel))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	c.cache.Delete(rel)
	return nil
}

// Paths returns the relative paths of all matching Markdown files.
// Together with ReadFile and Exists it satisfies lint.Source.
func (c *Collection) Paths(ctx context.Context) ([]string, error) {
	var paths []string
	err := c.walk(ctx, func(rel string, info fs.FileInfo) error {
		paths = append(paths, rel)
		return nil
	})
	return paths, err
}

// ReadFile returns the raw bytes of a document by relative path.
func (c *Collection) ReadFile(rel string) ([]byte, error) {
	if err := core.ValidateID(rel); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(c.Path, filepath.FromSlash(rel)))
}

// WriteFile replaces the raw bytes of a document by relative path.
// Unlike Save it performs no frontmatter rendering.
func (c *Collection) WriteFile(rel string, data []byte) error {
	if c.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := core.ValidateID(rel); err != nil {
		return err
	}
	full := filepath.Join(c.Path, filepath.FromSlash(rel))
	if err := writeFileAtomic(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	c.cache.Delete(rel)
	return nil
}

// Exists reports whether any file exists at the relative path.
func (c *Collection) Exists(rel string) bool {
	if core.ValidateID(rel) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(c.Path, filepath.FromSlash(rel)))
	return err == nil
}

// walk visits every matching Markdown file under the root in lexical order.
func (c *Collection) walk(ctx context.Context, fn func(rel string, info fs.FileInfo) error) error {
	return filepath.WalkDir(c.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == c.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), tempFilePrefix) {
			return nil
		}

		rel, err := filepath.Rel(c.Path, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !c.matches(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // file vanished mid-walk
		}

		return fn(rel, info)
	})
}

// matches applies the include/exclude globs to a relative slash path.
func (c *Collection) matches(rel string) bool {
	included := false
	for _, pattern := range c.config.Include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, pattern := range c.config.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return false
		}
	}
	return true
}
