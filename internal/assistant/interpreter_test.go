package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mmynk/splitsense/internal/analytics"
	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/insight"
	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
)

var testNow = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)

// ledgerRecorder commits straight to the ledger, or fails with err when set.
type ledgerRecorder struct {
	l   *ledger.Ledger
	err error
}

func (r *ledgerRecorder) AppendExpense(_ context.Context, e models.Expense) (models.Expense, error) {
	if r.err != nil {
		return models.Expense{}, r.err
	}
	_, err := r.l.AppendExpense(e)
	return e, err
}

func (r *ledgerRecorder) AppendGroup(_ context.Context, g models.Group) (models.Group, error) {
	if r.err != nil {
		return models.Group{}, r.err
	}
	_, err := r.l.AppendGroup(g)
	return g, err
}

func newTestInterpreter(t *testing.T, snap *models.Snapshot) (*Interpreter, *ledger.Ledger, *ledgerRecorder) {
	t.Helper()
	l := ledger.New(snap)
	rec := &ledgerRecorder{l: l}
	in := NewInterpreter(l, analytics.NewViews(l, nil, nil), rec)
	in.now = func() time.Time { return testNow }
	return in, l, rec
}

func TestInterpreter_RulePriority(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	tests := []struct {
		text string
		want string
	}{
		{"go to dashboard", "navigation"},
		{"add 300 for pizza paid by jay then go home", "navigation"},
		{"add 300 for pizza paid by jay", "add-expense"},
		{"create a goa group with jay and ram", "create-group"},
		{"predict my expenses", "prediction"},
		{"what is my personality", "personality"},
		{"any unusual spending?", "anomalies"},
		{"who should I settle with", "settlement"},
		{"give me a budget tip", "tip"},
		{"Group 1 health", "health"},
		{"show my trend", "trend"},
		{"compare categories", "category-bar"},
		{"Goa Trip 2024 user wise spend", "entity"},
		{"Vansh spending", "entity"},
		{"Office Lunch Crew", "entity"},
		{"how much do I owe", "owe"},
		{"show spending pie", "spending"},
		{"list transactions", "history"},
		{"show groups", "groups"},
		{"hello there", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := "fallback"
			if _, r := in.route(ledger.DefaultUserID, tt.text); r != nil {
				got = r.name
			}
			if got != tt.want {
				t.Errorf("route(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestInterpreter_AddExpense(t *testing.T) {
	in, l, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))
	ctx := context.Background()
	before := len(l.Expenses())

	reply, err := in.Interpret(ctx, "user-1", "add 600 for dinner paid by jay")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if reply.Kind != KindExpense || reply.Source != SourceLocal {
		t.Fatalf("reply = %+v, want a local expense card", reply)
	}
	if reply.Text != "Added expense: dinner for $600." {
		t.Errorf("Text = %q", reply.Text)
	}

	e := reply.Data.(models.Expense)
	if e.PaidBy != "user-2" || e.GroupID != "group-1" || e.Category != ledger.DefaultCategory {
		t.Errorf("expense = %+v, want paid by user-2 in group-1", e)
	}
	if len(e.Splits) != 3 || e.Splits[0].Amount != 200 {
		t.Errorf("splits = %+v, want three shares of 200", e.Splits)
	}
	if got := len(l.Expenses()); got != before+1 {
		t.Errorf("ledger has %d expenses, want %d", got, before+1)
	}
}

func TestInterpreter_AddExpenseToNamedGroup(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "add 120 for snacks in office lunch crew paid by raj")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	e, ok := reply.Data.(models.Expense)
	if !ok {
		t.Fatalf("reply = %+v, want an expense", reply)
	}
	if e.GroupID != "group-3" || e.PaidBy != "user-5" || len(e.Splits) != 3 {
		t.Errorf("expense = %+v, want raj paying in group-3", e)
	}
}

func TestInterpreter_AddExpenseUnknownPayer(t *testing.T) {
	in, l, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))
	before := len(l.Expenses())

	reply, err := in.Interpret(context.Background(), "user-1", "add 50 for cab paid by zed")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if reply.Kind != KindText {
		t.Errorf("Kind = %s, want text", reply.Kind)
	}
	if len(l.Expenses()) != before {
		t.Error("no expense should be added for an unknown payer")
	}
}

func TestInterpreter_CreateGroup(t *testing.T) {
	in, l, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-4", "create a weekend group with jay and ram")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	g, ok := reply.Data.(models.Group)
	if !ok {
		t.Fatalf("reply = %+v, want a group", reply)
	}
	want := []string{"user-4", "user-2", "user-3"}
	if fmt.Sprint(g.Members) != fmt.Sprint(want) {
		t.Errorf("Members = %v, want %v", g.Members, want)
	}
	if g.Name != "weekend" || g.Type != defaultGroupType {
		t.Errorf("group = %+v", g)
	}
	if _, ok := l.Group(g.ID); !ok {
		t.Error("group was not appended to the ledger")
	}
}

func TestInterpreter_CommitFailureIsAnError(t *testing.T) {
	in, _, rec := newTestInterpreter(t, ledger.DemoSnapshot(testNow))
	rec.err = errors.New("disk full")

	if _, err := in.Interpret(context.Background(), "user-1", "create a weekend group with jay"); err == nil {
		t.Error("expected storage failure to surface as an error")
	}
}

func TestInterpreter_Health(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "Group 2 health")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	card, ok := reply.Data.(HealthCard)
	if !ok || card.GroupName != "Goa Trip 2024" {
		t.Fatalf("reply = %+v, want a health card for Goa Trip 2024", reply)
	}

	empty, _, _ := newTestInterpreter(t, ledger.RosterSnapshot())
	reply, err = empty.Interpret(context.Background(), "user-1", "how healthy are we")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if reply.Text != "No groups found to analyze." {
		t.Errorf("Text = %q", reply.Text)
	}
}

func TestInterpreter_Settlement(t *testing.T) {
	snap := ledger.DemoSnapshot(testNow)
	in, _, _ := newTestInterpreter(t, snap)

	advice := insight.SuggestSettlement(calculator.ComputeUserAnalytics(snap.Expenses, "user-3"))
	if advice.Owed || advice.To == "" {
		t.Fatalf("demo data should leave user-3 owing someone, got %+v", advice)
	}
	creditor, _ := ledger.New(snap).User(advice.To)

	reply, err := in.Interpret(context.Background(), "user-3", "who should I settle with")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	got, ok := reply.Data.(Settlement)
	if !ok || got.To != creditor.Name || got.Amount != advice.Amount {
		t.Errorf("reply = %+v, want settle %v with %s", reply, advice.Amount, creditor.Name)
	}
}

func TestInterpreter_EntitySpending(t *testing.T) {
	snap := ledger.DemoSnapshot(testNow)
	in, _, _ := newTestInterpreter(t, snap)
	ctx := context.Background()

	reply, err := in.Interpret(ctx, "user-1", "Vansh spending")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	share := calculator.ComputeUserAnalytics(snap.Expenses, "user-4").TotalShare
	if want := fmt.Sprintf("Vansh has spent $%.2f total.", share); reply.Text != want {
		t.Errorf("Text = %q, want %q", reply.Text, want)
	}

	reply, err = in.Interpret(ctx, "user-1", "compare jay and ram spending")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	bars, ok := reply.Data.([]calculator.NamedValue)
	if !ok || reply.Kind != KindBar || len(bars) != 2 || bars[0].Name != "Jay" || bars[1].Name != "Ram" {
		t.Errorf("reply = %+v, want a Jay vs Ram bar chart", reply)
	}
}

func TestInterpreter_MemberBreakdown(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "Office Lunch Crew member wise breakdown")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	bars, ok := reply.Data.([]calculator.NamedValue)
	if !ok || len(bars) != 3 {
		t.Fatalf("reply = %+v, want three member bars", reply)
	}
	for i := 1; i < len(bars); i++ {
		if bars[i].Value > bars[i-1].Value {
			t.Errorf("bars not sorted by share: %+v", bars)
		}
	}
	for _, b := range bars {
		if b.Name != "Dev" && b.Name != "Raj" && b.Name != "Shiv" {
			t.Errorf("unexpected member label %q", b.Name)
		}
	}
}

func TestInterpreter_Owe(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "how much do I owe")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if reply.Kind != KindBalance {
		t.Fatalf("Kind = %s, want %s", reply.Kind, KindBalance)
	}
	for _, nv := range reply.Data.([]calculator.NamedValue) {
		if nv.Value <= 0 {
			t.Errorf("balance entries must be positive magnitudes, got %+v", nv)
		}
	}
}

func TestInterpreter_RecentExpenses(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "list transactions")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	expenses := reply.Data.([]models.Expense)
	if len(expenses) != recentLimit {
		t.Fatalf("got %d expenses, want %d", len(expenses), recentLimit)
	}
	for i := 1; i < len(expenses); i++ {
		if expenses[i].Date.After(expenses[i-1].Date) {
			t.Errorf("expenses not newest first at %d", i)
		}
	}
}

func TestInterpreter_Fallback(t *testing.T) {
	in, _, _ := newTestInterpreter(t, ledger.DemoSnapshot(testNow))

	reply, err := in.Interpret(context.Background(), "user-1", "hello there")
	if err != nil {
		t.Fatalf("Interpret failed: %v", err)
	}
	if reply.Text != fallbackText || reply.Kind != KindText || reply.Source != SourceLocal {
		t.Errorf("reply = %+v, want local fallback text", reply)
	}
}
