package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mmynk/splitsense/internal/cache"
	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/ledger"
)

func newViews(t *testing.T) (*Views, *ledger.Ledger, *cache.Memory[calculator.UserAnalytics]) {
	t.Helper()
	l := ledger.New(ledger.DemoSnapshot(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))
	users := cache.NewMemory[calculator.UserAnalytics](16)
	return NewViews(l, users, cache.NewMemory[calculator.GroupAnalytics](16)), l, users
}

func TestViews_UserMatchesDirectComputation(t *testing.T) {
	v, l, _ := newViews(t)
	ctx := context.Background()

	got := v.User(ctx, "user-1")
	want := calculator.ComputeUserAnalytics(l.Expenses(), "user-1")
	if math.Abs(got.NetBalance-want.NetBalance) > 1e-9 || math.Abs(got.TotalShare-want.TotalShare) > 1e-9 {
		t.Errorf("User() = %+v, want %+v", got, want)
	}
}

func TestViews_CachesPerVersion(t *testing.T) {
	v, l, users := newViews(t)
	ctx := context.Background()

	first := v.User(ctx, "user-2")
	v.User(ctx, "user-2")
	if users.Len() != 1 {
		t.Fatalf("cache has %d entries, want 1", users.Len())
	}

	e, err := l.DraftExpense(ledger.ExpenseDraft{Description: "Dinner", Amount: 300, GroupID: "group-1"}, "user-2", time.Now())
	if err != nil {
		t.Fatalf("DraftExpense failed: %v", err)
	}
	if _, err := l.AppendExpense(e); err != nil {
		t.Fatalf("AppendExpense failed: %v", err)
	}

	second := v.User(ctx, "user-2")
	if users.Len() != 2 {
		t.Errorf("cache has %d entries, want 2 after a mutation", users.Len())
	}
	if math.Abs(second.TotalPaid-first.TotalPaid-300) > 1e-9 {
		t.Errorf("TotalPaid went from %v to %v, want +300", first.TotalPaid, second.TotalPaid)
	}
}

func TestViews_GroupAndNilCaches(t *testing.T) {
	l := ledger.New(ledger.DemoSnapshot(time.Now()))
	v := NewViews(l, nil, nil)

	g := v.Group(context.Background(), "group-2")
	if g.ExpenseCount != 8 {
		t.Errorf("ExpenseCount = %d, want 8", g.ExpenseCount)
	}
	if unknown := v.Group(context.Background(), "nope"); unknown.ExpenseCount != 0 || unknown.TotalGroupSpend != 0 {
		t.Errorf("unknown group should be empty, got %+v", unknown)
	}
}

func appendPaidBy(t *testing.T, l *ledger.Ledger, payer string, amount float64) {
	t.Helper()
	e, err := l.DraftExpense(ledger.ExpenseDraft{Description: "Dinner", Amount: amount, GroupID: "group-1"}, payer, time.Now())
	if err != nil {
		t.Fatalf("DraftExpense failed: %v", err)
	}
	if _, err := l.AppendExpense(e); err != nil {
		t.Fatalf("AppendExpense failed: %v", err)
	}
}

// A second ledger over the same shared Redis cache reaches the same version
// number with different contents; it must not read the first one's entries.
func TestViews_SharedRedisAcrossRestart(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	ctx := context.Background()

	newRedisViews := func(l *ledger.Ledger) *Views {
		return NewViews(l,
			cache.NewRedis[calculator.UserAnalytics](client, time.Minute),
			cache.NewRedis[calculator.GroupAnalytics](client, time.Minute),
		)
	}

	first := ledger.New(ledger.DemoSnapshot(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))
	appendPaidBy(t, first, "user-2", 300)
	before := newRedisViews(first).User(ctx, "user-2")
	newRedisViews(first).Group(ctx, "group-1")
	if len(mr.Keys()) != 2 {
		t.Fatalf("redis holds %d keys, want 2", len(mr.Keys()))
	}

	restarted := ledger.New(first.Snapshot())
	appendPaidBy(t, restarted, "user-2", 900)
	if restarted.Version() != first.Version() {
		t.Fatalf("versions differ (%d vs %d); the scenario needs them equal", restarted.Version(), first.Version())
	}

	v := newRedisViews(restarted)
	got := v.User(ctx, "user-2")
	want := calculator.ComputeUserAnalytics(restarted.Expenses(), "user-2")
	if math.Abs(got.TotalPaid-want.TotalPaid) > 1e-9 {
		t.Errorf("TotalPaid = %v, want %v (stale value was %v)", got.TotalPaid, want.TotalPaid, before.TotalPaid)
	}
	if math.Abs(got.TotalPaid-before.TotalPaid-900) > 1e-9 {
		t.Errorf("TotalPaid went from %v to %v, want +900", before.TotalPaid, got.TotalPaid)
	}

	group := v.Group(ctx, "group-1")
	wantGroup := calculator.ComputeGroupAnalytics(restarted.Expenses(), "group-1")
	if group.ExpenseCount != wantGroup.ExpenseCount || math.Abs(group.TotalGroupSpend-wantGroup.TotalGroupSpend) > 1e-9 {
		t.Errorf("Group() = %+v, want %+v", group, wantGroup)
	}

	again := v.User(ctx, "user-2")
	if math.Abs(again.TotalPaid-want.TotalPaid) > 1e-9 {
		t.Errorf("cached TotalPaid = %v, want %v", again.TotalPaid, want.TotalPaid)
	}
}
