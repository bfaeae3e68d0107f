package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/models"
)

// DefaultCategory is used when an expense draft carries no category.
const DefaultCategory = "Food"

// ExpenseDraft is an expense request before IDs, defaults and splits are resolved.
type ExpenseDraft struct {
	Description string
	Amount      float64
	GroupID     string
	Category    string

	// PaidBy defaults to the acting user.
	PaidBy string

	// ParticipantIDs defaults to the group's members, in member order.
	ParticipantIDs []string

	// Date defaults to the draft time.
	Date time.Time
}

// DraftExpense resolves a draft into a complete expense without appending it.
//
// The payer defaults to actingUserID and the participants to the group's
// members; the split allocation comes from calculator.ComputeSplits.
func (l *Ledger) DraftExpense(d ExpenseDraft, actingUserID string, now time.Time) (models.Expense, error) {
	group, ok := l.Group(d.GroupID)
	if !ok {
		return models.Expense{}, fmt.Errorf("%w: unknown group %q", ErrInvalidReference, d.GroupID)
	}

	payer := d.PaidBy
	if payer == "" {
		payer = actingUserID
	}
	if _, ok := l.User(payer); !ok {
		return models.Expense{}, fmt.Errorf("%w: unknown payer %q", ErrInvalidReference, payer)
	}

	participants := d.ParticipantIDs
	if len(participants) == 0 {
		participants = group.Members
	}
	splits, err := calculator.ComputeSplits(d.Amount, participants)
	if err != nil {
		return models.Expense{}, err
	}

	category := d.Category
	if category == "" {
		category = DefaultCategory
	}
	date := d.Date
	if date.IsZero() {
		date = now
	}

	return models.Expense{
		ID:          uuid.New().String(),
		Description: d.Description,
		Amount:      d.Amount,
		PaidBy:      payer,
		GroupID:     group.ID,
		Date:        date.UTC(),
		Category:    category,
		Splits:      splits,
	}, nil
}

// DraftGroup builds a new group with a generated ID.
// Members are validated when the group is appended.
func DraftGroup(name, groupType string, members []string, now time.Time) models.Group {
	return models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Members:   append([]string(nil), members...),
		Type:      groupType,
		CreatedAt: now.UTC(),
	}
}
