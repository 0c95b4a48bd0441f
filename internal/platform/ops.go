package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/shelf/pkg/core"
	"github.com/aretw0/shelf/pkg/lint"
	"github.com/aretw0/shelf/pkg/toc"
)

// Lint runs the configured rule set over the collection at path.
// Lint never writes: the collection is opened read-only.
func Lint(ctx context.Context, path string, opts ...Option) (*core.Report, error) {
	opts = append([]Option{WithReadOnly(true)}, opts...)

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	coll, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	src, ok := coll.(lint.Source)
	if !ok {
		return nil, errors.New("collection does not expose raw documents for linting")
	}

	cfg, err := loadConfig(path, o)
	if err != nil {
		return nil, err
	}

	runnerOpts := cfg.RunnerOptions()
	if o.logger != nil {
		runnerOpts = append(runnerOpts, lint.WithLogger(o.logger))
	}

	corpus, err := lint.BuildCorpus(ctx, src, cfg.Index)
	if err != nil {
		return nil, err
	}

	return lint.NewRunner(cfg.BuildRules(), runnerOpts...).Run(ctx, corpus)
}

// Sync synchronizes the collection at path with its git remote.
func Sync(ctx context.Context, path string, opts ...Option) error {
	opts = append([]Option{WithMustExist(true)}, opts...)

	coll, err := Init(path, opts...)
	if err != nil {
		return err
	}

	syncable, ok := coll.(core.Syncable)
	if !ok {
		return errors.New("collection does not support synchronization")
	}
	return syncable.Sync(ctx)
}

// UpdateTOC regenerates the managed TOC region of the index document.
// With check set, it only reports drift and never writes.
// It returns whether the index changed (or would change).
func UpdateTOC(ctx context.Context, path string, check bool, opts ...Option) (bool, error) {
	if check {
		opts = append([]Option{WithReadOnly(true)}, opts...)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	coll, err := Init(path, opts...)
	if err != nil {
		return false, err
	}

	src, ok := coll.(lint.Source)
	if !ok {
		return false, errors.New("collection does not expose raw documents")
	}

	cfg, err := loadConfig(path, o)
	if err != nil {
		return false, err
	}

	corpus, err := lint.BuildCorpus(ctx, src, cfg.Index)
	if err != nil {
		return false, err
	}

	index, err := src.ReadFile(cfg.Index)
	if err != nil {
		return false, fmt.Errorf("failed to read index document %s: %w", cfg.Index, err)
	}

	entries := toc.Entries(corpus, cfg.ArticlesDir)

	if check {
		return toc.Check(index, entries)
	}

	updated, changed, err := toc.Update(index, entries)
	if err != nil || !changed {
		return changed, err
	}

	writer, ok := coll.(interface {
		WriteFile(rel string, data []byte) error
	})
	if !ok {
		return false, errors.New("collection does not support raw writes")
	}
	return true, writer.WriteFile(cfg.Index, updated)
}
