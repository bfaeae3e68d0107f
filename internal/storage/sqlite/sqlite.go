// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
// Each Save replaces the stored snapshot inside a single transaction.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the stored snapshot. It returns nil, nil if Save was never called.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var savedAt int64
	err := s.db.QueryRowContext(ctx, "SELECT saved_at FROM snapshot_meta WHERE id = 1").Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot := &models.Snapshot{}
	if snapshot.Users, err = loadUsers(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.Groups, err = loadGroups(ctx, tx); err != nil {
		return nil, err
	}
	if snapshot.Expenses, err = loadExpenses(ctx, tx); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save overwrites the stored snapshot. Either the whole snapshot is written or nothing is.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return errors.New("cannot save a nil snapshot")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first; the cascade would also handle it but be explicit.
	for _, table := range []string{"expense_splits", "expenses", "group_members", "groups", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := saveUsers(ctx, tx, snapshot.Users); err != nil {
		return err
	}
	if err := saveGroups(ctx, tx, snapshot.Groups); err != nil {
		return err
	}
	if err := saveExpenses(ctx, tx, snapshot.Expenses); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at",
		s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
