package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// ErrUnchanged is returned by an UpdateFunc to skip the write.
var ErrUnchanged = errors.New("value unchanged")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns (nil, nil) for a missing key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, r.db, key)
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, r.db, key, value)
}

// Delete is a no-op for a missing key.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	return del(ctx, r.db, key)
}

// Update reads key, passes its value to fn and stores the result, all in one
// transaction.
func (r *SQLiteRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, key)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if errors.Is(err, ErrUnchanged) {
			return nil
		}
		if err != nil {
			return err
		}

		if next == nil {
			return del(ctx, tx, key)
		}
		return set(ctx, tx, key, next)
	})
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
