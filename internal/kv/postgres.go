package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kgrady/boltcard-gateway/internal/db"
)

// Postgres is the shared Store both OS processes point at. The version column
// backs the conditional write: the UPDATE predicate rejects stale versions, so
// no lock is ever held across a read-modify-write cycle.
type Postgres struct {
	db *db.DB
}

// NewPostgres creates a Store backed by the kv_entries table.
func NewPostgres(database *db.DB) *Postgres {
	return &Postgres{db: database}
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, int64, error) {
	query := `
		SELECT value, version
		FROM kv_entries
		WHERE key = $1
	`

	var value []byte
	var version int64
	err := p.db.QueryRowContext(ctx, query, key).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NoVersion, nil
	}
	if err != nil {
		return nil, NoVersion, fmt.Errorf("failed to read kv entry: %w", err)
	}

	return value, version, nil
}

// PutIfUnchanged implements Store.
func (p *Postgres) PutIfUnchanged(ctx context.Context, key string, value []byte, version int64) (int64, bool, error) {
	if version == NoVersion {
		return p.insertIfAbsent(ctx, key, value)
	}

	query := `
		UPDATE kv_entries
		SET value = $2, version = version + 1, updated_at = NOW()
		WHERE key = $1 AND version = $3
		RETURNING version
	`

	var newVersion int64
	err := p.db.QueryRowContext(ctx, query, key, value, version).Scan(&newVersion)
	if errors.Is(err, sql.ErrNoRows) {
		// Version moved under us, or the key was deleted.
		return NoVersion, false, nil
	}
	if err != nil {
		return NoVersion, false, fmt.Errorf("failed to update kv entry: %w", err)
	}

	return newVersion, true, nil
}

func (p *Postgres) insertIfAbsent(ctx context.Context, key string, value []byte) (int64, bool, error) {
	query := `
		INSERT INTO kv_entries (key, value, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (key) DO NOTHING
	`

	result, err := p.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return NoVersion, false, fmt.Errorf("failed to insert kv entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return NoVersion, false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return NoVersion, false, nil
	}

	return 1, true, nil
}

var _ Store = (*Postgres)(nil)
