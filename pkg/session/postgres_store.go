package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPostgresTable = "sessions"

// PostgresStore persists session records in a Postgres table with a jsonb
// data column. Expired rows stay in the table until a Flush sweep removes
// them, mirroring the in-memory backend: Exists and Has keep reporting
// true for an expired row while IsValid goes false.
//
// PostgresStore snapshots the record on Set — mutate the data bag, then
// Set again to persist.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// PostgresOption is a functional option for PostgresStore
type PostgresOption func(*PostgresStore)

// WithTable sets the table name (default "sessions")
func WithTable(table string) PostgresOption {
	return func(s *PostgresStore) {
		s.table = table
	}
}

// NewPostgresStore creates a Postgres-backed session store on an existing
// pool. The caller owns the pool's lifecycle.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		pool:  pool,
		table: defaultPostgresTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSchema creates the sessions table and its expiry index if they do
// not exist yet.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id         text PRIMARY KEY,
			data       jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL,
			expires_at timestamptz NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %[1]s_expires_at_idx ON %[1]s (expires_at);
	`, s.table))
	return err
}

func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, s.table),
		id,
	).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) IsValid(ctx context.Context, id string) (bool, error) {
	var valid bool
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND expires_at > now())`, s.table),
		id,
	).Scan(&valid)
	return valid, err
}

func (s *PostgresStore) Has(ctx context.Context, id string) (bool, error) {
	return s.Exists(ctx, id)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var (
		raw                  []byte
		createdAt, expiresAt time.Time
	)

	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT data, created_at, expires_at FROM %s WHERE id = $1`, s.table),
		id,
	).Scan(&raw, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	return restoreSession(id, data, createdAt, expiresAt), nil
}

func (s *PostgresStore) Set(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	raw, err := json.Marshal(sess.Values())
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, data, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			data       = EXCLUDED.data,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`, s.table), sess.ID, raw, sess.CreatedAt, sess.ExpiresAt)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table), id)
	return err
}

// IDs returns the identifiers of every stored row, expired or not.
func (s *PostgresStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT id FROM %s`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
