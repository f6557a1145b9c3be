package store

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Backends hand back field values in their native shapes (int64 and
// time.Time from Firestore, json.Number and RFC 3339 strings from JSONB).
// The accessors below normalize them.

func (d Document) String(field string) string {
	v, _ := d.Data[field].(string)
	return v
}

func (d Document) Int64(field string) int64 {
	switch v := d.Data[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(math.Round(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(math.Round(f))
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func (d Document) Time(field string) time.Time {
	switch v := d.Data[field].(type) {
	case time.Time:
		return v.UTC()
	case *time.Time:
		if v != nil {
			return v.UTC()
		}
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// TimePtr is Time for optional fields; nil when the field is unset.
func (d Document) TimePtr(field string) *time.Time {
	t := d.Time(field)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Matches reports whether every filter holds for data.
func Matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !equalValues(data[f.Field], f.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if na, ok := asInt64(a); ok {
		nb, ok := asInt64(b)
		return ok && na == nb
	}
	return reflect.DeepEqual(a, b)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
