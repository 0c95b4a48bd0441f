package shelf

import (
	"context"
	"log/slog"

	"github.com/aretw0/shelf/internal/platform"
	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring Shelf.
type Option = platform.Option

// WithAutoInit enables automatic creation of the collection directory.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist ensures the collection directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the collection in read-only mode: all writes return
// core.ErrReadOnly and the metadata cache is not persisted.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithCollection allows injecting a custom storage adapter.
func WithCollection(coll core.Collection) Option {
	return platform.WithCollection(coll)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".shelf").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithInclude overrides the include globs from shelf.yaml.
func WithInclude(globs ...string) Option {
	return platform.WithInclude(globs...)
}

// WithExclude overrides the exclude globs from shelf.yaml.
func WithExclude(globs ...string) Option {
	return platform.WithExclude(globs...)
}

// WithConfig bypasses the shelf.yaml lookup and uses the given configuration.
func WithConfig(cfg config.Config) Option {
	return platform.WithConfig(cfg)
}

// WithEventBuffer sets the size of the watch event channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new Shelf Service.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a collection explicitly.
func Init(path string, opts ...Option) (core.Collection, error) {
	return platform.Init(path, opts...)
}

// --- Operations ---

// Lint runs the configured rule set over the collection at path.
func Lint(ctx context.Context, path string, opts ...Option) (*core.Report, error) {
	return platform.Lint(ctx, path, opts...)
}

// UpdateTOC regenerates the managed TOC region of the index document.
// With check set, it only reports drift and never writes.
func UpdateTOC(ctx context.Context, path string, check bool, opts ...Option) (bool, error) {
	return platform.UpdateTOC(ctx, path, check, opts...)
}

// Sync synchronizes the collection at path with its git remote.
func Sync(ctx context.Context, path string, opts ...Option) error {
	return platform.Sync(ctx, path, opts...)
}

// --- Utils ---

// FindRoot recursively looks upwards for a collection root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
