// Package sqlite persists saved returns to a single SQLite table as JSON
// blobs, snapshotting each record after every successful mutation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"taxcore/internal/infra/persistence/memory"
	"taxcore/pkg/domain"
)

var _ domain.ReturnStore = (*Store)(nil)

// Store wraps the in-memory store with a SQLite file.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database at path and hydrates the
// in-memory state from it. An empty path defaults to ./taxcore.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "taxcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS returns (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create returns table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT payload FROM returns`)
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
		`INSERT INTO returns(id,payload) VALUES(?,?) ON CONFLICT(id) DO UPDATE SET payload=excluded.payload`,
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
	if _, err := s.db.ExecContext(ctx, `DELETE FROM returns WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete return: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
