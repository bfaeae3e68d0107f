// Package ledger holds the authoritative collections of users, groups and
// expenses and guards every mutation behind validation and a single-writer lock.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/models"
)

var (
	// ErrInvalidReference is returned when a record references an unknown user or group.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidRecord is returned for malformed user, group or expense records.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrNotFound is returned when a record with the given ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when appending a record whose ID is already taken.
	ErrDuplicateID = errors.New("duplicate id")
)

// Ledger owns the users, groups and expenses of the application.
//
// Mutations validate their input, bump Version and return a deep copy of the
// new state. Readers always receive copies, so no caller can alias ledger
// internals. A single RWMutex makes each mutation a transaction boundary.
type Ledger struct {
	mu      sync.RWMutex
	state   *models.Snapshot
	users   map[string]int // user ID -> index in state.Users
	groups  map[string]int // group ID -> index in state.Groups
	version uint64
	epoch   string
}

// New creates a Ledger from a snapshot. A nil snapshot yields an empty ledger.
// The snapshot is copied; later changes to it do not affect the ledger.
func New(snapshot *models.Snapshot) *Ledger {
	state := snapshot.Clone()
	if state == nil {
		state = &models.Snapshot{}
	}
	l := &Ledger{
		epoch:  uuid.New().String(),
		state:  state,
		users:  make(map[string]int, len(state.Users)),
		groups: make(map[string]int, len(state.Groups)),
	}
	for i, u := range state.Users {
		l.users[u.ID] = i
	}
	for i, g := range state.Groups {
		l.groups[g.ID] = i
	}
	return l
}

// Epoch identifies this Ledger instance. Versions restart at zero in every
// instance, so only the pair (Epoch, Version) names a state across processes.
func (l *Ledger) Epoch() string { return l.epoch }

// Version returns a counter that increases on every successful mutation.
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() *models.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Clone()
}

// View returns the current state and version read under the same lock.
func (l *Ledger) View() (*models.Snapshot, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Clone(), l.version
}

// Expenses returns a copy of every expense in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	return l.Snapshot().Expenses
}

// Users returns a copy of the roster.
func (l *Ledger) Users() []models.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.User(nil), l.state.Users...)
}

// Groups returns a copy of every group in creation order.
func (l *Ledger) Groups() []models.Group {
	return l.Snapshot().Groups
}

// User looks up a user by ID.
func (l *Ledger) User(id string) (models.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.users[id]
	if !ok {
		return models.User{}, false
	}
	return l.state.Users[i], true
}

// UserByEmail looks up a user by email address, ignoring case.
func (l *Ledger) UserByEmail(email string) (models.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, u := range l.state.Users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// Group looks up a group by ID.
func (l *Ledger) Group(id string) (models.Group, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.groups[id]
	if !ok {
		return models.Group{}, false
	}
	g := l.state.Groups[i]
	g.Members = append([]string(nil), g.Members...)
	return g, true
}

// UserName returns the display name for id, or "Unknown" when the user is
// not on the roster. Read paths never fail on stale references.
func (l *Ledger) UserName(id string) string {
	if u, ok := l.User(id); ok {
		return u.Name
	}
	return "Unknown"
}

// AppendUser adds a user to the roster. Bootstrap uses it to backfill roster
// users missing from a loaded snapshot.
func (l *Ledger) AppendUser(user models.User) (*models.Snapshot, error) {
	if user.ID == "" || user.Name == "" {
		return nil, fmt.Errorf("%w: user requires id and name", ErrInvalidRecord)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.users[user.ID]; exists {
		return nil, fmt.Errorf("%w: user %s", ErrDuplicateID, user.ID)
	}
	l.users[user.ID] = len(l.state.Users)
	l.state.Users = append(l.state.Users, user)
	l.version++
	return l.state.Clone(), nil
}

// AppendGroup validates and adds a group.
// Every member must be on the roster and appear only once.
func (l *Ledger) AppendGroup(group models.Group) (*models.Snapshot, error) {
	if group.ID == "" || group.Name == "" {
		return nil, fmt.Errorf("%w: group requires id and name", ErrInvalidRecord)
	}
	if len(group.Members) == 0 {
		return nil, fmt.Errorf("%w: group %s has no members", ErrInvalidRecord, group.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.groups[group.ID]; exists {
		return nil, fmt.Errorf("%w: group %s", ErrDuplicateID, group.ID)
	}
	seen := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		if _, ok := l.users[m]; !ok {
			return nil, fmt.Errorf("%w: unknown member %q", ErrInvalidReference, m)
		}
		if seen[m] {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidRecord, m)
		}
		seen[m] = true
	}

	group.Members = append([]string(nil), group.Members...)
	l.groups[group.ID] = len(l.state.Groups)
	l.state.Groups = append(l.state.Groups, group)
	l.version++
	return l.state.Clone(), nil
}

// AppendExpense validates and adds an expense.
//
// The payer, the group and every split participant must exist, the amount
// must be positive and split participants must be unique. The split sum is
// not reconciled against the amount.
func (l *Ledger) AppendExpense(expense models.Expense) (*models.Snapshot, error) {
	if expense.ID == "" {
		return nil, fmt.Errorf("%w: expense requires an id", ErrInvalidRecord)
	}
	if expense.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", calculator.ErrInvalidSplit)
	}
	if len(expense.Splits) == 0 {
		return nil, fmt.Errorf("%w: expense %s has no splits", calculator.ErrInvalidSplit, expense.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.state.Expenses {
		if e.ID == expense.ID {
			return nil, fmt.Errorf("%w: expense %s", ErrDuplicateID, expense.ID)
		}
	}
	if _, ok := l.users[expense.PaidBy]; !ok {
		return nil, fmt.Errorf("%w: unknown payer %q", ErrInvalidReference, expense.PaidBy)
	}
	if _, ok := l.groups[expense.GroupID]; !ok {
		return nil, fmt.Errorf("%w: unknown group %q", ErrInvalidReference, expense.GroupID)
	}
	seen := make(map[string]bool, len(expense.Splits))
	for _, s := range expense.Splits {
		if _, ok := l.users[s.UserID]; !ok {
			return nil, fmt.Errorf("%w: unknown participant %q", ErrInvalidReference, s.UserID)
		}
		if seen[s.UserID] {
			return nil, fmt.Errorf("%w: duplicate participant %q", calculator.ErrInvalidSplit, s.UserID)
		}
		seen[s.UserID] = true
	}

	expense.Splits = append([]models.Split(nil), expense.Splits...)
	l.state.Expenses = append(l.state.Expenses, expense)
	l.version++
	return l.state.Clone(), nil
}

// RemoveExpense deletes an expense by ID.
func (l *Ledger) RemoveExpense(id string) (*models.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.state.Expenses {
		if e.ID == id {
			l.state.Expenses = append(l.state.Expenses[:i], l.state.Expenses[i+1:]...)
			l.version++
			return l.state.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
}
