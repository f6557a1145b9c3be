package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.Add(ctx, "expenses", map[string]any{"userId": "u1", "amountCents": int64(1000)})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, "expenses", id)
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.String("userId"))
	assert.Equal(t, int64(1000), doc.Int64("amountCents"))

	require.NoError(t, s.Update(ctx, "expenses", id, map[string]any{"amountCents": int64(2500)}))
	doc, err = s.Get(ctx, "expenses", id)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), doc.Int64("amountCents"))
	assert.Equal(t, "u1", doc.String("userId"))

	require.NoError(t, s.Delete(ctx, "expenses", id))
	_, err = s.Get(ctx, "expenses", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_UpdateMissing(t *testing.T) {
	err := New().Update(context.Background(), "expenses", "nope", map[string]any{"a": 1})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_FindFiltersAndLimit(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, owner := range []string{"u1", "u2", "u1", "u1"} {
		_, err := s.Add(ctx, "categories", map[string]any{"userId": owner})
		require.NoError(t, err)
	}

	docs, err := s.Find(ctx, "categories", store.Query{Filters: []store.Filter{store.Eq("userId", "u1")}})
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	docs, err = s.Find(ctx, "categories", store.Query{Filters: []store.Filter{store.Eq("userId", "u1")}, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = s.Find(ctx, "missing", store.Query{})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	data := map[string]any{"name": "Food"}
	id, err := s.Add(ctx, "categories", data)
	require.NoError(t, err)
	data["name"] = "changed"

	doc, err := s.Get(ctx, "categories", id)
	require.NoError(t, err)
	doc.Data["name"] = "mutated"

	again, err := s.Get(ctx, "categories", id)
	require.NoError(t, err)
	assert.Equal(t, "Food", again.String("name"))
}

func TestStore_SetAndTimes(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Set(ctx, "users", "uid-1", map[string]any{"createdAt": now}))
	doc, err := s.Get(ctx, "users", "uid-1")
	require.NoError(t, err)
	assert.True(t, now.Equal(doc.Time("createdAt")))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Get(ctx, "expenses", "x")
	assert.ErrorIs(t, err, context.Canceled)
}
