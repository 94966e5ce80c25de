// Package localstore is the durable on-device key-value store used for the
// session snapshot and the offline favorites list.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"gamecatalog/pkg/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type KV struct {
	db *sql.DB
}

// Open creates or opens the database at path. ":memory:" gives a throwaway store.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return &KV{db: db}, nil
}

func (s *KV) Close() error {
	return s.db.Close()
}

// Get decodes the value stored under key into dst. found is false when the key
// is absent.
func (s *KV) Get(ctx context.Context, key string, dst interface{}) (found bool, err error) {
	query, args, err := sqlBuilder.Select("value").From("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return false, err
	}

	var raw string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("Discarding corrupt local entry %q: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *KV) Put(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query, args, err := sqlBuilder.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, string(raw), time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *KV) Delete(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.Delete("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
