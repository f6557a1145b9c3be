package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentAccessors(t *testing.T) {
	ts := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

	doc := Document{ID: "d1", Data: map[string]any{
		"name":      "Food",
		"fromInt":   int64(1050),
		"fromFloat": float64(1050),
		"fromJSON":  json.Number("1050"),
		"timeNat":   ts,
		"timeStr":   ts.Format(time.RFC3339Nano),
		"wrongType": 12,
	}}

	assert.Equal(t, "Food", doc.String("name"))
	assert.Equal(t, "", doc.String("wrongType"))
	assert.Equal(t, "", doc.String("missing"))

	for _, f := range []string{"fromInt", "fromFloat", "fromJSON"} {
		assert.Equal(t, int64(1050), doc.Int64(f), f)
	}

	assert.True(t, ts.Equal(doc.Time("timeNat")))
	assert.True(t, ts.Equal(doc.Time("timeStr")))
	assert.True(t, doc.Time("missing").IsZero())
	assert.Nil(t, doc.TimePtr("missing"))
}

func TestMatches(t *testing.T) {
	data := map[string]any{"userId": "u1", "amountCents": int64(500)}

	assert.True(t, Matches(data, nil))
	assert.True(t, Matches(data, []Filter{Eq("userId", "u1")}))
	assert.True(t, Matches(data, []Filter{Eq("amountCents", 500)}))
	assert.False(t, Matches(data, []Filter{Eq("userId", "u2")}))
	assert.False(t, Matches(data, []Filter{Eq("userId", "u1"), Eq("categoryId", "c1")}))
}
