package platform

import (
	"log/slog"

	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/core"
)

// options holds the internal configuration for the shelf service.
type options struct {
	collection core.Collection
	logger     *slog.Logger
	config     map[string]any
}

// Option defines a functional option for configuring shelf.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCollection injects a custom storage adapter (e.g. a mock).
// If provided, the default filesystem adapter is skipped.
func WithCollection(coll core.Collection) Option {
	return func(o *options) {
		o.collection = coll
	}
}

// WithAutoInit enables automatic creation of the collection directory.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithMustExist ensures the collection directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode: writes return core.ErrReadOnly and
// the metadata cache is not persisted.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithSystemDir overrides the hidden directory name (default ".shelf").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithInclude overrides the include globs from shelf.yaml.
func WithInclude(globs ...string) Option {
	return func(o *options) {
		o.config["include"] = globs
	}
}

// WithExclude overrides the exclude globs from shelf.yaml.
func WithExclude(globs ...string) Option {
	return func(o *options) {
		o.config["exclude"] = globs
	}
}

// WithConfig bypasses the shelf.yaml lookup and uses the given configuration.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.config["config"] = cfg
	}
}

// WithEventBuffer sets the size of the watch event channel buffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the watch loop (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
