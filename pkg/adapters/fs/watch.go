package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/shelf/pkg/core"
)

// debounceWindow coalesces editor save bursts (write + chmod + rename) into
// a single event per file.
const debounceWindow = 50 * time.Millisecond

// Watch observes changes to files matching the doublestar pattern.
// The returned channel is closed when ctx is cancelled or the watcher fails.
func (c *Collection) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**/*.md"
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := c.addRecursive(watcher); err != nil {
		watcher.Close()
		return nil, err
	}

	buffer := c.config.EventBuffer
	if buffer <= 0 {
		buffer = 64
	}

	events := make(chan core.Event, buffer)
	w := &watchLoop{
		coll:    c,
		pattern: pattern,
		watcher: watcher,
		events:  events,
		timers:  make(map[string]*time.Timer),
	}

	go w.run(ctx)
	return events, nil
}

// addRecursive registers the root and every subdirectory with the watcher.
// fsnotify does not watch recursively by itself.
func (c *Collection) addRecursive(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(c.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" || d.Name() == c.config.SystemDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

type watchLoop struct {
	coll    *Collection
	pattern string
	watcher *fsnotify.Watcher
	events  chan<- core.Event

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func (w *watchLoop) run(ctx context.Context) {
	defer w.shutdown()

	logger := w.coll.config.Logger

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if logger != nil {
				logger.Error("fsnotify error", "error", err)
			}
			if w.coll.config.ErrorHandler != nil {
				w.coll.config.ErrorHandler(err)
			}
		}
	}
}

func (w *watchLoop) handle(event fsnotify.Event) {
	// New directories must be added to the watch set before their contents
	// start changing.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.coll.addRecursive(w.watcher)
			return
		}
	}

	rel, err := filepath.Rel(w.coll.Path, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	if strings.HasPrefix(filepath.Base(rel), tempFilePrefix) {
		return
	}
	if ok, err := doublestar.Match(w.pattern, rel); err != nil || !ok {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	w.debounce(core.Event{
		Type:      eType,
		ID:        idOf(rel),
		Timestamp: time.Now().Unix(),
	})
}

// debounce delays emission per ID, resetting the timer on each new event so
// only the last of a burst is delivered.
func (w *watchLoop) debounce(e core.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.timers[e.ID]; ok {
		t.Stop()
	}
	w.timers[e.ID] = time.AfterFunc(debounceWindow, func() {
		w.emit(e)
	})
}

// emit delivers an event unless the loop has shut down. The send is
// non-blocking: when the buffer is full the event is dropped rather than
// stalling the timer goroutine.
func (w *watchLoop) emit(e core.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.events <- e:
	default:
	}
}

// shutdown stops pending timers and closes the event channel. The closed
// flag is flipped under the same mutex emit takes, so no timer can send
// after the close.
func (w *watchLoop) shutdown() {
	w.watcher.Close()

	w.mu.Lock()
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	close(w.events)
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
