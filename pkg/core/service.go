package core

import (
	"context"
	"errors"
	"path"
	"strings"
)

// Service handles the business logic for articles.
type Service struct {
	coll Collection
}

// NewService creates a new Service.
func NewService(coll Collection) *Service {
	return &Service{coll: coll}
}

// ValidateID checks the domain rules for article IDs:
// non-empty, slash-separated, relative, and confined to the collection root.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("article ID cannot be empty")
	}
	if strings.HasPrefix(id, "/") {
		return errors.New("article ID cannot be absolute")
	}
	clean := path.Clean(id)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.New("article ID cannot escape the collection root")
	}
	return nil
}

// SaveArticle saves an article after validating its ID.
func (s *Service) SaveArticle(ctx context.Context, id string, content string, metadata Metadata) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	a := Article{
		ID:       id,
		Content:  content,
		Metadata: metadata,
	}

	return s.coll.Save(ctx, a)
}

// GetArticle retrieves an article.
func (s *Service) GetArticle(ctx context.Context, id string) (Article, error) {
	if err := ValidateID(id); err != nil {
		return Article{}, err
	}
	return s.coll.Get(ctx, id)
}

// ListArticles retrieves all articles.
func (s *Service) ListArticles(ctx context.Context) ([]Article, error) {
	return s.coll.List(ctx)
}

// DeleteArticle removes an article.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	return s.coll.Delete(ctx, id)
}

// Collection exposes the underlying collection.
// Needed by callers that build a lint corpus directly from storage.
func (s *Service) Collection() Collection {
	return s.coll
}

// Watch observes changes in the collection if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.coll.(Watchable)
	if !ok {
		return nil, errors.New("collection does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Sync synchronizes the collection with its remote if supported.
func (s *Service) Sync(ctx context.Context) error {
	sy, ok := s.coll.(Syncable)
	if !ok {
		return errors.New("collection does not support synchronization")
	}
	return sy.Sync(ctx)
}
