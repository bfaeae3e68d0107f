package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/models"
)

var testNow = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := New(RosterSnapshot())
	if _, err := l.AppendGroup(models.Group{
		ID:      "flat",
		Name:    "Flat",
		Members: []string{"user-1", "user-2", "user-3"},
		Type:    "Home",
	}); err != nil {
		t.Fatalf("AppendGroup failed: %v", err)
	}
	return l
}

func validExpense(id string) models.Expense {
	return models.Expense{
		ID:       id,
		Amount:   300,
		PaidBy:   "user-1",
		GroupID:  "flat",
		Date:     testNow,
		Category: "Food",
		Splits: []models.Split{
			{UserID: "user-1", Amount: 100},
			{UserID: "user-2", Amount: 100},
			{UserID: "user-3", Amount: 100},
		},
	}
}

func TestAppendExpense_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *models.Expense)
		wantErr error
	}{
		{
			name:   "valid expense",
			mutate: func(e *models.Expense) {},
		},
		{
			name:    "missing id",
			mutate:  func(e *models.Expense) { e.ID = "" },
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "zero amount",
			mutate:  func(e *models.Expense) { e.Amount = 0 },
			wantErr: calculator.ErrInvalidSplit,
		},
		{
			name:    "no splits",
			mutate:  func(e *models.Expense) { e.Splits = nil },
			wantErr: calculator.ErrInvalidSplit,
		},
		{
			name:    "unknown payer",
			mutate:  func(e *models.Expense) { e.PaidBy = "ghost" },
			wantErr: ErrInvalidReference,
		},
		{
			name:    "unknown group",
			mutate:  func(e *models.Expense) { e.GroupID = "nowhere" },
			wantErr: ErrInvalidReference,
		},
		{
			name:    "unknown participant",
			mutate:  func(e *models.Expense) { e.Splits[2].UserID = "ghost" },
			wantErr: ErrInvalidReference,
		},
		{
			name:    "duplicate participant",
			mutate:  func(e *models.Expense) { e.Splits[2].UserID = "user-1" },
			wantErr: calculator.ErrInvalidSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			before := l.Version()

			e := validExpense("e1")
			tt.mutate(&e)
			snap, err := l.AppendExpense(e)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("AppendExpense() unexpected error: %v", err)
				}
				if len(snap.Expenses) != 1 {
					t.Errorf("snapshot has %d expenses, want 1", len(snap.Expenses))
				}
				if l.Version() != before+1 {
					t.Errorf("Version = %d, want %d", l.Version(), before+1)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AppendExpense() error = %v, want %v", err, tt.wantErr)
			}
			if l.Version() != before {
				t.Errorf("failed append changed version from %d to %d", before, l.Version())
			}
			if len(l.Expenses()) != 0 {
				t.Error("failed append must leave the ledger unchanged")
			}
		})
	}
}

func TestAppendExpense_DuplicateID(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AppendExpense(validExpense("e1")); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if _, err := l.AppendExpense(validExpense("e1")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAppendGroup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		group   models.Group
		wantErr error
	}{
		{
			name:  "valid group",
			group: models.Group{ID: "g", Name: "Trip", Members: []string{"user-1", "user-4"}},
		},
		{
			name:    "no members",
			group:   models.Group{ID: "g", Name: "Trip"},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown member",
			group:   models.Group{ID: "g", Name: "Trip", Members: []string{"user-1", "ghost"}},
			wantErr: ErrInvalidReference,
		},
		{
			name:    "duplicate member",
			group:   models.Group{ID: "g", Name: "Trip", Members: []string{"user-1", "user-1"}},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "taken id",
			group:   models.Group{ID: "flat", Name: "Again", Members: []string{"user-1"}},
			wantErr: ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			_, err := l.AppendGroup(tt.group)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("AppendGroup() unexpected error: %v", err)
				}
				if _, ok := l.Group(tt.group.ID); !ok {
					t.Error("appended group not found")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AppendGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRemoveExpense(t *testing.T) {
	l := newTestLedger(t)
	for _, id := range []string{"e1", "e2", "e3"} {
		if _, err := l.AppendExpense(validExpense(id)); err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}

	snap, err := l.RemoveExpense("e2")
	if err != nil {
		t.Fatalf("RemoveExpense failed: %v", err)
	}
	if len(snap.Expenses) != 2 || snap.Expenses[0].ID != "e1" || snap.Expenses[1].ID != "e3" {
		t.Errorf("unexpected expenses after removal: %+v", snap.Expenses)
	}

	if _, err := l.RemoveExpense("e2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AppendExpense(validExpense("e1")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	snap := l.Snapshot()
	snap.Expenses[0].Amount = 1
	snap.Expenses[0].Splits[0].UserID = "mutated"
	snap.Groups[0].Members[0] = "mutated"

	e := l.Expenses()[0]
	if e.Amount != 300 || e.Splits[0].UserID != "user-1" {
		t.Errorf("ledger expense changed through snapshot: %+v", e)
	}
	g, _ := l.Group("flat")
	if g.Members[0] != "user-1" {
		t.Errorf("ledger group changed through snapshot: %+v", g)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	input := RosterSnapshot()
	l := New(input)
	input.Users[0].Name = "Changed"

	if got := l.UserName("user-1"); got != "Dev Parikh" {
		t.Errorf("UserName = %q, want Dev Parikh", got)
	}
	if got := l.UserName("ghost"); got != "Unknown" {
		t.Errorf("UserName(ghost) = %q, want Unknown", got)
	}
	if New(nil).Version() != 0 || len(New(nil).Users()) != 0 {
		t.Error("nil snapshot should yield an empty ledger")
	}
}

func TestDraftExpense(t *testing.T) {
	l := newTestLedger(t)

	t.Run("defaults payer participants category and date", func(t *testing.T) {
		e, err := l.DraftExpense(ExpenseDraft{Description: "Pizza", Amount: 100, GroupID: "flat"}, "user-2", testNow)
		if err != nil {
			t.Fatalf("DraftExpense failed: %v", err)
		}
		if e.ID == "" {
			t.Error("expected a generated id")
		}
		if e.PaidBy != "user-2" {
			t.Errorf("PaidBy = %s, want acting user", e.PaidBy)
		}
		if e.Category != DefaultCategory {
			t.Errorf("Category = %s, want %s", e.Category, DefaultCategory)
		}
		if !e.Date.Equal(testNow) {
			t.Errorf("Date = %v, want %v", e.Date, testNow)
		}
		if len(e.Splits) != 3 || e.Splits[0].Amount != 33.33 {
			t.Errorf("unexpected splits: %+v", e.Splits)
		}
		if len(l.Expenses()) != 0 {
			t.Error("DraftExpense must not append")
		}
	})

	t.Run("explicit participants", func(t *testing.T) {
		e, err := l.DraftExpense(ExpenseDraft{
			Amount: 50, GroupID: "flat", PaidBy: "user-3", ParticipantIDs: []string{"user-1", "user-3"},
		}, "user-2", testNow)
		if err != nil {
			t.Fatalf("DraftExpense failed: %v", err)
		}
		if e.PaidBy != "user-3" || len(e.Splits) != 2 || e.Splits[1].Amount != 25 {
			t.Errorf("unexpected draft: %+v", e)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := l.DraftExpense(ExpenseDraft{Amount: 10, GroupID: "nowhere"}, "user-1", testNow)
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := l.DraftExpense(ExpenseDraft{Amount: 0, GroupID: "flat"}, "user-1", testNow)
		if !errors.Is(err, calculator.ErrInvalidSplit) {
			t.Errorf("expected ErrInvalidSplit, got %v", err)
		}
	})
}

func TestDemoSnapshot(t *testing.T) {
	snap := DemoSnapshot(testNow)
	l := New(&models.Snapshot{Users: snap.Users})
	for _, g := range snap.Groups {
		if _, err := l.AppendGroup(g); err != nil {
			t.Fatalf("demo group %s rejected: %v", g.ID, err)
		}
	}
	for _, e := range snap.Expenses {
		if _, err := l.AppendExpense(e); err != nil {
			t.Fatalf("demo expense %s rejected: %v", e.Description, err)
		}
	}

	again := DemoSnapshot(testNow)
	if again.Expenses[0].ID != snap.Expenses[0].ID {
		t.Error("demo expense ids should be deterministic")
	}
}

func TestConcurrentAppends(t *testing.T) {
	l := newTestLedger(t)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := l.DraftExpense(ExpenseDraft{Amount: float64(i + 1), GroupID: "flat"}, "user-1", testNow)
			if err != nil {
				t.Errorf("draft failed: %v", err)
				return
			}
			if _, err := l.AppendExpense(e); err != nil {
				t.Errorf("append failed: %v", err)
			}
			_ = l.Expenses()
		}(i)
	}
	wg.Wait()

	if got := len(l.Expenses()); got != n {
		t.Errorf("got %d expenses, want %d", got, n)
	}
	// one group append plus n expenses
	if got := l.Version(); got != n+1 {
		t.Errorf("Version = %d, want %d", got, n+1)
	}
}

func TestEpoch(t *testing.T) {
	a := New(RosterSnapshot())
	b := New(a.Snapshot())

	if a.Epoch() == "" {
		t.Fatal("expected a non-empty epoch")
	}
	if a.Epoch() == b.Epoch() {
		t.Errorf("ledgers built from the same snapshot share epoch %q", a.Epoch())
	}

	before := a.Epoch()
	if _, err := a.AppendGroup(models.Group{ID: "g", Name: "Trip", Members: []string{"user-1"}}); err != nil {
		t.Fatalf("AppendGroup failed: %v", err)
	}
	if a.Epoch() != before {
		t.Error("epoch must not change on mutation")
	}
}
