package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cow-catalog/internal/ports/kv"
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS cowcatalog_kv (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// EnsureSchema crea la tabla si no existe (no hay migraciones).
func (r *KVRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, kvSchema)
	return err
}

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM cowcatalog_kv WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("postgres kv: get %s: %w", key, err)
	}
	return v, nil
}

func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("postgres kv: key required")
	}
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cowcatalog_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres kv: set %s: %w", key, err)
	}
	return nil
}

func (r *KVRepo) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	// pgx mapea []string a text[]
	_, err := r.db.ExecContext(ctx, `DELETE FROM cowcatalog_kv WHERE key = ANY($1)`, keys)
	if err != nil {
		return fmt.Errorf("postgres kv: remove: %w", err)
	}
	return nil
}
