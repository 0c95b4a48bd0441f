package platform

import (
	"context"

	"github.com/aretw0/shelf/pkg/adapters/fs"
	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/core"
)

// New creates a shelf Service rooted at the given path.
//
//	svc, err := shelf.New("./docs", shelf.WithMustExist(true))
func New(path string, opts ...Option) (*core.Service, error) {
	coll, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(coll), nil
}

// Init builds and initializes the collection at the given path.
// The shelf.yaml at the collection root (if any) supplies include/exclude
// globs; functional options take precedence over it.
func Init(path string, opts ...Option) (core.Collection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.collection != nil {
		return o.collection, nil
	}

	coll, err := initFS(path, o)
	if err != nil {
		return nil, err
	}

	if err := coll.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return coll, nil
}

// initFS wires the filesystem adapter from options and shelf.yaml.
func initFS(path string, o *options) (*fs.Collection, error) {
	cfg, err := loadConfig(path, o)
	if err != nil {
		return nil, err
	}

	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	include := cfg.Include
	if v, ok := o.config["include"].([]string); ok && len(v) > 0 {
		include = v
	}
	exclude := cfg.Exclude
	if v, ok := o.config["exclude"].([]string); ok && len(v) > 0 {
		exclude = v
	}

	return fs.NewCollection(fs.Config{
		Path:         path,
		MustExist:    mustExist || !autoInit,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		SystemDir:    systemDir,
		Include:      include,
		Exclude:      exclude,
		EventBuffer:  eventBuffer,
		ErrorHandler: errorHandler,
	}), nil
}

// loadConfig resolves the collection configuration: an injected config wins
// over the shelf.yaml at the collection root.
func loadConfig(path string, o *options) (config.Config, error) {
	if cfg, ok := o.config["config"].(config.Config); ok {
		return cfg, nil
	}
	return config.Load(path)
}
