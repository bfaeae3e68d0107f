package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/internal/storage"
)

// Bootstrap loads the persisted snapshot into a new Ledger. When nothing was
// saved yet it seeds the roster, plus the demo groups and expenses when
// seedDemo is set, and saves that snapshot immediately. Roster users missing
// from a loaded snapshot are appended and saved.
func Bootstrap(ctx context.Context, store storage.Store, seedDemo bool, now time.Time) (*ledger.Ledger, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	if snap != nil {
		slog.Info("Ledger loaded",
			"users", len(snap.Users),
			"groups", len(snap.Groups),
			"expenses", len(snap.Expenses),
		)
		return backfillRoster(ctx, store, ledger.New(snap))
	}

	var seed *models.Snapshot
	if seedDemo {
		seed = ledger.DemoSnapshot(now)
	} else {
		seed = ledger.RosterSnapshot()
	}
	if err := store.Save(ctx, seed); err != nil {
		return nil, fmt.Errorf("failed to save seed snapshot: %w", err)
	}

	slog.Info("Ledger seeded", "demo", seedDemo, "users", len(seed.Users), "expenses", len(seed.Expenses))
	return ledger.New(seed), nil
}

func backfillRoster(ctx context.Context, store storage.Store, l *ledger.Ledger) (*ledger.Ledger, error) {
	var latest *models.Snapshot
	for _, u := range ledger.Roster() {
		if _, ok := l.User(u.ID); ok {
			continue
		}
		snap, err := l.AppendUser(u)
		if err != nil {
			return nil, fmt.Errorf("failed to add roster user %s: %w", u.ID, err)
		}
		latest = snap
		slog.Info("Roster user added", "user_id", u.ID)
	}
	if latest != nil {
		if err := store.Save(ctx, latest); err != nil {
			return nil, fmt.Errorf("failed to save roster: %w", err)
		}
	}
	return l, nil
}
