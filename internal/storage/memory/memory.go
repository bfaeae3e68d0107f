// Package memory provides a process-local storage.Store, used in tests and
// when no database is configured.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps the last saved snapshot in memory.
type Store struct {
	mu       sync.Mutex
	snapshot *models.Snapshot
	saves    int
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the last saved snapshot, or nil if none was saved.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone(), nil
}

// Save stores a copy of snapshot.
func (s *Store) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("cannot save a nil snapshot")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
