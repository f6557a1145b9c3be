// Package memory is an in-process document store for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

type collection struct {
	docs  map[string]map[string]any
	order []string
}

// Store keeps documents in insertion order per collection.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	newID       func() string
}

func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		newID:       uuid.NewString,
	}
}

// WithIDs overrides id generation, for deterministic tests.
func (s *Store) WithIDs(gen func() string) *Store {
	s.newID = gen
	return s
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, store.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Document{ID: id, Data: store.Clone(data)}, nil
}

func (s *Store) Find(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []store.Document{}
	c, ok := s.collections[collection]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		data := c.docs[id]
		if !store.Matches(data, q.Filters) {
			continue
		}
		out = append(out, store.Document{ID: id, Data: store.Clone(data)})
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	c := s.coll(collection)
	c.docs[id] = store.Clone(data)
	c.order = append(c.order, id)
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = store.Clone(data)
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return store.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	merged := store.Clone(data)
	for k, v := range patch {
		merged[k] = v
	}
	c.docs[id] = merged
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}
