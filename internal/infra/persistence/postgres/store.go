// Package postgres provides a Postgres-backed saved-return store that mirrors
// the in-memory semantics, storing each record as a JSONB payload.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"taxcore/internal/infra/persistence/memory"
	"taxcore/pkg/domain"
)

var _ domain.ReturnStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/taxcore?sslmode=disable"
)

// Store persists saved returns to Postgres while reusing the in-memory
// implementation for reads.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the returns table exists, and hydrates the
// in-memory store from existing rows.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS returns (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create returns table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM returns`)
	if err != nil {
		return fmt.Errorf("select returns: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var records []domain.SavedReturn
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		var rec domain.SavedReturn
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("decode return: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate returns: %w", err)
	}
	s.ImportState(records)
	return nil
}

// Put stores the record in memory, then upserts its JSON payload.
func (s *Store) Put(ctx context.Context, rec domain.SavedReturn) (domain.SavedReturn, error) {
	saved, err := s.Store.Put(ctx, rec)
	if err != nil {
		return domain.SavedReturn{}, err
	}
	payload, err := json.Marshal(saved)
	if err != nil {
		return domain.SavedReturn{}, fmt.Errorf("encode return: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO returns(id,payload) VALUES($1,$2) ON CONFLICT(id) DO UPDATE SET payload=excluded.payload`,
		saved.ID, payload); err != nil {
		return domain.SavedReturn{}, fmt.Errorf("upsert return: %w", err)
	}
	return saved, nil
}

// Delete removes the record from memory and from the table.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM returns WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete return: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
