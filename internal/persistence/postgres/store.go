// Package postgres backs the Record Store with a pgx connection pool for
// self-hosted deployments. The logical layout matches the file driver: one
// JSON list of records per named collection.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akhillingutla-us/EcoTracker/internal/domain"
)

const (
	activitiesKey = "activities"
	photosKey     = "photos"
)

// Store provides Postgres-backed persistence for both record collections.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the collections table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS collections (
        name TEXT PRIMARY KEY,
        payload JSONB NOT NULL
    )`
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// LoadActivities returns the activity collection in insertion order.
func (s *Store) LoadActivities(ctx context.Context) ([]domain.ActivityRecord, error) {
	raw, err := s.loadPayload(ctx, activitiesKey)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.ActivityRecord](raw), nil
}

// AppendActivity adds one record to the end of the activity collection.
func (s *Store) AppendActivity(ctx context.Context, record domain.ActivityRecord) error {
	return s.append(ctx, activitiesKey, record)
}

// LoadPhotos returns the photo collection in insertion order.
func (s *Store) LoadPhotos(ctx context.Context) ([]domain.PhotoRecord, error) {
	raw, err := s.loadPayload(ctx, photosKey)
	if err != nil {
		return nil, err
	}
	return decodeCollection[domain.PhotoRecord](raw), nil
}

// AppendPhoto adds one record to the end of the photo collection.
func (s *Store) AppendPhoto(ctx context.Context, record domain.PhotoRecord) error {
	return s.append(ctx, photosKey, record)
}

// ClearAll removes both collection rows inside a single transaction, so a
// reader never observes one collection cleared and the other not.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM collections WHERE name = ANY($1)`, []string{activitiesKey, photosKey}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) loadPayload(ctx context.Context, name string) (json.RawMessage, error) {
	const query = `SELECT payload FROM collections WHERE name = $1`

	var raw json.RawMessage
	if err := s.pool.QueryRow(ctx, query, name).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return raw, nil
}

// append reads the current payload under a row lock, extends it and writes
// it back, keeping the whole read-modify-write in one transaction.
func (s *Store) append(ctx context.Context, name string, record any) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", name, err)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	var raw json.RawMessage
	err = tx.QueryRow(ctx, `SELECT payload FROM collections WHERE name = $1 FOR UPDATE`, name).Scan(&raw)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	existing := decodeCollection[json.RawMessage](raw)
	existing = append(existing, json.RawMessage(encoded))

	updated, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", name, err)
	}

	const upsert = `INSERT INTO collections (name, payload) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload`
	if _, err := tx.Exec(ctx, upsert, name, updated); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// decodeCollection fails closed: a payload that is absent, null, or not a
// parsable list of records loads as an empty collection.
func decodeCollection[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}
