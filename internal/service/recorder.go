package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/splitsense/internal/assistant"
	"github.com/mmynk/splitsense/internal/events"
	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/internal/storage"
)

// ErrPersist is returned when a mutation was applied to the ledger but the
// snapshot could not be saved. The ledger keeps the record; the next
// successful save persists it.
var ErrPersist = errors.New("failed to persist ledger")

var _ assistant.Recorder = (*Recorder)(nil)

// Recorder is the single write path into the ledger. Every commit appends to
// the ledger, saves the full snapshot, then publishes an event. Commits are
// serialized so snapshots reach the store in version order.
type Recorder struct {
	mu        sync.Mutex
	ledger    *ledger.Ledger
	store     storage.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewRecorder creates a Recorder. A nil publisher drops events.
func NewRecorder(l *ledger.Ledger, store storage.Store, publisher events.Publisher, logger *slog.Logger) *Recorder {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Recorder{ledger: l, store: store, publisher: publisher, logger: logger}
}

// AppendExpense commits a fully formed expense.
func (r *Recorder) AppendExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.ledger.AppendExpense(expense)
	if err != nil {
		return models.Expense{}, err
	}
	if err := r.persist(ctx, snap); err != nil {
		return models.Expense{}, err
	}

	r.publish(ctx, events.ExpenseAppended, events.ExpenseAppendedEvent{
		ExpenseID: expense.ID,
		GroupID:   expense.GroupID,
		PaidBy:    expense.PaidBy,
		Amount:    expense.Amount,
		Category:  expense.Category,
	})
	return expense, nil
}

// AppendGroup commits a fully formed group.
func (r *Recorder) AppendGroup(ctx context.Context, group models.Group) (models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.ledger.AppendGroup(group)
	if err != nil {
		return models.Group{}, err
	}
	if err := r.persist(ctx, snap); err != nil {
		return models.Group{}, err
	}

	r.publish(ctx, events.GroupAppended, events.GroupAppendedEvent{
		GroupID: group.ID,
		Name:    group.Name,
		Members: group.Members,
	})
	return group, nil
}

// RemoveExpense deletes an expense by ID.
func (r *Recorder) RemoveExpense(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.ledger.RemoveExpense(id)
	if err != nil {
		return err
	}
	if err := r.persist(ctx, snap); err != nil {
		return err
	}

	r.publish(ctx, events.ExpenseRemoved, events.ExpenseRemovedEvent{ExpenseID: id})
	return nil
}

func (r *Recorder) persist(ctx context.Context, snap *models.Snapshot) error {
	if err := r.store.Save(ctx, snap); err != nil {
		r.logger.Error("Failed to save ledger snapshot", "version", r.ledger.Version(), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (r *Recorder) publish(ctx context.Context, eventType string, data any) {
	version := r.ledger.Version()
	if err := r.publisher.Publish(ctx, eventType, version, data); err != nil {
		r.logger.Warn("Failed to publish ledger event", "type", eventType, "version", version, "error", err)
	}
}
