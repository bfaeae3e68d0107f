// Package events publishes ledger mutations to a Redis stream so other
// processes can follow changes without polling the ledger.
package events

import (
	"context"
	"time"
)

// Event types
const (
	ExpenseAppended = "expense.appended"
	ExpenseRemoved  = "expense.removed"
	GroupAppended   = "group.appended"
)

// LedgerStream is the stream all ledger events are appended to.
const LedgerStream = "ledger.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Version   uint64    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type ExpenseAppendedEvent struct {
	ExpenseID string  `json:"expense_id"`
	GroupID   string  `json:"group_id"`
	PaidBy    string  `json:"paid_by"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}

type ExpenseRemovedEvent struct {
	ExpenseID string `json:"expense_id"`
}

type GroupAppendedEvent struct {
	GroupID string   `json:"group_id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Publisher emits ledger events. Publishing is best effort: callers log
// failures and carry on, the ledger stays authoritative.
type Publisher interface {
	Publish(ctx context.Context, eventType string, version uint64, data any) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, uint64, any) error { return nil }
