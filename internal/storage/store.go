// Package storage provides abstractions for persisting the ledger.
package storage

import (
	"context"

	"github.com/mmynk/splitsense/internal/models"
)

// Store persists whole ledger snapshots.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
type Store interface {
	// Load returns the last saved snapshot.
	// Returns nil and no error when nothing has been saved yet.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save replaces the persisted state with snapshot.
	Save(ctx context.Context, snapshot *models.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
