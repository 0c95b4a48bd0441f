package core

import "context"

// Collection defines the contract for storing and retrieving articles.
// Adhering to this interface keeps the domain independent of the
// underlying storage mechanism (filesystem, in-memory, remote).
type Collection interface {
	// Save persists an article. It creates if not exists, or updates if it does.
	Save(ctx context.Context, a Article) error

	// Get retrieves an article by its ID.
	Get(ctx context.Context, id string) (Article, error)

	// List returns all articles in the collection.
	List(ctx context.Context) ([]Article, error)

	// Delete removes an article by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// EventType represents the type of change in the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the collection.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// Watchable defines an interface for collections that can emit change events.
type Watchable interface {
	// Watch observes changes matching the given doublestar pattern.
	// The returned channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Syncable defines an interface for collections that support synchronization
// with a remote (e.g. git pull/push).
type Syncable interface {
	Sync(ctx context.Context) error
}
