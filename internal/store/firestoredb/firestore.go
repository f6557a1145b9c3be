// Package firestoredb adapts a Cloud Firestore client to store.Store.
package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

const pingCollection = "_health"

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return &store.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Store) Find(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, translate(err)
	}

	out := make([]store.Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, store.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", translate(err)
	}
	return ref.ID, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	updates := make([]firestore.Update, 0, len(patch))
	for k, v := range patch {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	// Update fails with NotFound when the document does not exist.
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collection(pingCollection).Limit(1).Documents(ctx).GetAll()
	return translate(err)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return store.ErrNotFound
	case codes.DeadlineExceeded:
		return fmt.Errorf("firestore: %w", context.DeadlineExceeded)
	case codes.Canceled:
		return fmt.Errorf("firestore: %w", context.Canceled)
	}
	return fmt.Errorf("firestore: %w", err)
}
