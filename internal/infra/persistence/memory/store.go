// Package memory provides the in-memory saved-return store. It is the
// reference implementation the durable backends wrap: they reuse its
// semantics and snapshot its full state after every mutation.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"taxcore/pkg/domain"
)

var _ domain.ReturnStore = (*Store)(nil)

// Store keeps saved returns in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.SavedReturn
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]domain.SavedReturn)}
}

// Put inserts or replaces a record by id.
func (s *Store) Put(_ context.Context, rec domain.SavedReturn) (domain.SavedReturn, error) {
	if rec.ID == "" {
		return domain.SavedReturn{}, fmt.Errorf("saved return missing id")
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec, nil
}

// Get returns the record for id, reporting presence explicitly.
func (s *Store) Get(_ context.Context, id string) (domain.SavedReturn, bool) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	return rec, ok
}

// List returns every record ordered by id.
func (s *Store) List(_ context.Context) []domain.SavedReturn {
	s.mu.RLock()
	out := make([]domain.SavedReturn, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Delete removes a record; deleting an unknown id is an error.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("return %s not found", id)
	}
	delete(s.records, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// ExportState snapshots every record for durable backends.
func (s *Store) ExportState() []domain.SavedReturn {
	return s.List(context.Background())
}

// ImportState replaces the store contents with the snapshot.
func (s *Store) ImportState(records []domain.SavedReturn) {
	s.mu.Lock()
	s.records = make(map[string]domain.SavedReturn, len(records))
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	s.mu.Unlock()
}
