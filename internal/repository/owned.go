// Package repository holds the owner-scoped data access shared by the
// category and expense services. Every record it touches carries a userId
// field, and every single-record operation goes through one ownership guard.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

const (
	FieldUserID    = "userId"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

const DefaultTimeout = 5 * time.Second

// Collection names a store collection and the entity it holds, for messages.
type Collection struct {
	Name   string
	Entity string
}

// Owned performs user-scoped operations on any collection.
type Owned struct {
	store   store.Store
	timeout time.Duration
	now     func() time.Time
}

// NewOwned creates an owner-scoped repository. Every store call is bounded by
// timeout; a non-positive timeout falls back to DefaultTimeout.
func NewOwned(s store.Store, timeout time.Duration) *Owned {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Owned{store: s, timeout: timeout, now: time.Now}
}

// WithClock replaces the time source used for createdAt/updatedAt stamps.
func (r *Owned) WithClock(now func() time.Time) *Owned {
	r.now = now
	return r
}

// Now returns the repository clock in UTC.
func (r *Owned) Now() time.Time {
	return r.now().UTC()
}

// ListByOwner returns the documents of userID matching every filter. No
// matches yields an empty slice.
func (r *Owned) ListByOwner(ctx context.Context, c Collection, userID string, filters ...store.Filter) ([]store.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	all := append([]store.Filter{store.Eq(FieldUserID, userID)}, filters...)
	docs, err := r.store.Find(ctx, c.Name, store.Query{Filters: all})
	if err != nil {
		return nil, r.translate(c, err)
	}

	// Results are re-checked so a backend that ignores a filter can never
	// leak another user's records.
	out := make([]store.Document, 0, len(docs))
	for _, d := range docs {
		if store.Matches(d.Data, all) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Exists reports whether any document in the collection matches all filters.
func (r *Owned) Exists(ctx context.Context, c Collection, filters ...store.Filter) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	docs, err := r.store.Find(ctx, c.Name, store.Query{Filters: filters, Limit: 1})
	if err != nil {
		return false, r.translate(c, err)
	}
	return len(docs) > 0, nil
}

// GetOwned is the ownership guard: NotFound when the document does not exist,
// Forbidden when it belongs to another user.
func (r *Owned) GetOwned(ctx context.Context, c Collection, id, userID string) (*store.Document, error) {
	if id == "" {
		return nil, apperr.NotFound(c.Entity + " not found")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc, err := r.store.Get(ctx, c.Name, id)
	if err != nil {
		return nil, r.translate(c, err)
	}
	if doc.String(FieldUserID) != userID {
		return nil, apperr.Forbidden("you do not have permission to access this " + c.Entity)
	}
	return doc, nil
}

// CreateOwned stamps userId and timestamps onto data and persists it under a
// new id.
func (r *Owned) CreateOwned(ctx context.Context, c Collection, userID string, data map[string]any) (*store.Document, error) {
	now := r.Now()

	record := store.Clone(data)
	record[FieldUserID] = userID
	record[FieldCreatedAt] = now
	record[FieldUpdatedAt] = now

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.store.Add(ctx, c.Name, record)
	if err != nil {
		return nil, r.translate(c, err)
	}
	return &store.Document{ID: id, Data: record}, nil
}

// UpdateOwned merges patch into a document owned by userID. The returned
// record is the pre-update data plus the patch; it is not read back, so a
// concurrent write to other fields may not be reflected.
func (r *Owned) UpdateOwned(ctx context.Context, c Collection, id, userID string, patch map[string]any) (*store.Document, error) {
	existing, err := r.GetOwned(ctx, c, id, userID)
	if err != nil {
		return nil, err
	}
	return r.Merge(ctx, c, existing, patch)
}

// Merge persists patch onto a document the caller has already passed through
// GetOwned.
func (r *Owned) Merge(ctx context.Context, c Collection, existing *store.Document, patch map[string]any) (*store.Document, error) {
	changes := store.Clone(patch)
	delete(changes, FieldUserID)
	delete(changes, FieldCreatedAt)
	changes[FieldUpdatedAt] = r.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.Update(ctx, c.Name, existing.ID, changes); err != nil {
		return nil, r.translate(c, err)
	}

	merged := store.Clone(existing.Data)
	for k, v := range changes {
		merged[k] = v
	}
	return &store.Document{ID: existing.ID, Data: merged}, nil
}

// DeleteOwned removes a document owned by userID and returns its id.
func (r *Owned) DeleteOwned(ctx context.Context, c Collection, id, userID string) (string, error) {
	existing, err := r.GetOwned(ctx, c, id, userID)
	if err != nil {
		return "", err
	}
	if err := r.Remove(ctx, c, existing); err != nil {
		return "", err
	}
	return existing.ID, nil
}

// Remove deletes a document the caller has already passed through GetOwned.
func (r *Owned) Remove(ctx context.Context, c Collection, existing *store.Document) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.Delete(ctx, c.Name, existing.ID); err != nil {
		return r.translate(c, err)
	}
	return nil
}

func (r *Owned) translate(c Collection, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, c.Entity+" not found", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, "document store did not respond in time", err)
	default:
		return apperr.Wrap(apperr.KindUpstream, "document store unavailable", err)
	}
}
