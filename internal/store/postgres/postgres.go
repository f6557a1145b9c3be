// Package postgres stores documents as JSONB rows of a single table, keyed by
// (collection, id).
package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       JSONB NOT NULL,
	PRIMARY KEY (collection, id)
)`,
	`CREATE INDEX IF NOT EXISTS documents_user_idx ON documents (collection, (data->>'userId'))`,
}

type Store struct {
	db    *sql.DB
	newID func() string
}

func New(db *sql.DB) *Store {
	return &Store{db: db, newID: uuid.NewString}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure documents schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	const q = `SELECT data FROM documents WHERE collection = $1 AND id = $2`

	var raw []byte
	err := s.db.QueryRowContext(ctx, q, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return &store.Document{ID: id, Data: data}, nil
}

func (s *Store) Find(ctx context.Context, collection string, q store.Query) ([]store.Document, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)
	args := []any{collection}

	for _, f := range q.Filters {
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode filter %s: %w", f.Field, err)
		}
		fmt.Fprintf(&sb, ` AND data -> $%d = $%d::jsonb`, len(args)+1, len(args)+2)
		args = append(args, f.Field, string(value))
	}
	sb.WriteString(` ORDER BY id`)
	if q.Limit > 0 {
		fmt.Fprintf(&sb, ` LIMIT %d`, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer rows.Close()

	out := make([]store.Document, 0, 16)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		data, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, store.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return out, nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	const q = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`

	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, q, collection, id, string(raw)); err != nil {
		return "", fmt.Errorf("add document: %w", err)
	}
	return id, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any) error {
	const q = `
INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, collection, id, string(raw)); err != nil {
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	const q = `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`

	raw, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	res, err := s.db.ExecContext(ctx, q, collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`

	if _, err := s.db.ExecContext(ctx, q, collection, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func decode(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
