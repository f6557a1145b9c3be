// Package store is the document-database boundary. Backends expose
// collections of schemaless documents with equality queries only.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Document is a stored record: a store-assigned id plus its fields.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is an equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Query selects documents matching all filters. A zero Limit means no limit.
type Query struct {
	Filters []Filter
	Limit   int
}

type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	// Add persists data under a new store-assigned id and returns it.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	// Set creates or replaces the document with the given id.
	Set(ctx context.Context, collection, id string, data map[string]any) error
	// Update merges patch into an existing document; ErrNotFound if absent.
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// Clone returns a shallow copy of data so callers never share a map with a backend.
func Clone(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
