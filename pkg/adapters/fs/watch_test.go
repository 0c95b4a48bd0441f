package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/adapters/fs"
	"github.com/aretw0/shelf/pkg/core"
)

// waitForEvent drains the channel until an event for the given ID arrives
// or the timeout expires.
func waitForEvent(t *testing.T, events <-chan core.Event, id string, timeout time.Duration) (core.Event, bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return core.Event{}, false
			}
			if e.ID == id {
				return e, true
			}
		case <-deadline:
			return core.Event{}, false
		}
	}
}

func TestWatch_Create(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := c.Watch(ctx, "**/*.md")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(c.Root(), "new.md"), []byte("# New\n"), 0644))

	e, ok := waitForEvent(t, events, "new", 3*time.Second)
	require.True(t, ok, "expected an event for new.md")
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
}

func TestWatch_PatternFilter(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := c.Watch(ctx, "articles/**")
	require.NoError(t, err)

	// Outside the pattern: no event expected.
	require.NoError(t, os.WriteFile(filepath.Join(c.Root(), "root.md"), []byte("# R\n"), 0644))

	_, ok := waitForEvent(t, events, "root", 300*time.Millisecond)
	assert.False(t, ok, "root.md should be filtered out by the pattern")
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	c := newCollection(t, fs.Config{})
	ctx, cancel := context.WithCancel(context.Background())

	events, err := c.Watch(ctx, "")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// A stray event may sneak in before close; drain once more.
			_, ok = <-events
			assert.False(t, ok)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("events channel was not closed after cancel")
	}
}
