package models

import "time"

// Expense represents a single shared payment.
//
// The sum of Splits is expected to approximate Amount within rounding
// tolerance, but this is not enforced. PaidBy does not need to appear in
// Splits: a user can pay for something they have no share in.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Rent - March").
	Description string `json:"description"`

	// Amount is the positive total that was paid.
	Amount float64 `json:"amount"`

	// PaidBy is the user ID of the payer.
	PaidBy string `json:"paid_by"`

	// GroupID is the group the expense belongs to.
	GroupID string `json:"group_id"`

	// Date is when the expense happened.
	Date time.Time `json:"date"`

	// Category is a free-text tag (e.g., "Food", "Rent").
	Category string `json:"category"`

	// Splits is the ordered per-participant share allocation.
	Splits []Split `json:"splits"`
}

// Split is one participant's share of an expense.
type Split struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// ShareOf returns the share allocated to userID and whether the user
// participates in the expense at all.
func (e Expense) ShareOf(userID string) (float64, bool) {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s.Amount, true
		}
	}
	return 0, false
}

// MonthKey returns the zero-padded "YYYY-MM" bucket of the expense date.
func (e Expense) MonthKey() string {
	return e.Date.UTC().Format("2006-01")
}
