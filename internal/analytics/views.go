// Package analytics serves balance and aggregation views of the ledger,
// memoized per ledger epoch and version.
package analytics

import (
	"context"

	"github.com/mmynk/splitsense/internal/cache"
	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/ledger"
)

const (
	userKind  = "user-analytics"
	groupKind = "group-analytics"
)

// Views computes analytics on demand and caches them by (epoch, version, subject).
// A mutation bumps the ledger version and a new Ledger gets a new epoch, so
// stale entries are never read.
// Returned maps and slices may be shared with the cache and must not be modified.
type Views struct {
	ledger *ledger.Ledger
	users  cache.Cache[calculator.UserAnalytics]
	groups cache.Cache[calculator.GroupAnalytics]
}

// NewViews creates Views over l. Nil caches disable memoization.
func NewViews(l *ledger.Ledger, users cache.Cache[calculator.UserAnalytics], groups cache.Cache[calculator.GroupAnalytics]) *Views {
	if users == nil {
		users = cache.Nop[calculator.UserAnalytics]{}
	}
	if groups == nil {
		groups = cache.Nop[calculator.GroupAnalytics]{}
	}
	return &Views{ledger: l, users: users, groups: groups}
}

// User returns the analytics of userID at the current ledger version.
func (v *Views) User(ctx context.Context, userID string) calculator.UserAnalytics {
	if hit, ok := v.users.Get(ctx, cache.Key(userKind, v.ledger.Epoch(), v.ledger.Version(), userID)); ok {
		return *hit
	}
	snap, version := v.ledger.View()
	a := calculator.ComputeUserAnalytics(snap.Expenses, userID)
	v.users.Set(ctx, cache.Key(userKind, v.ledger.Epoch(), version, userID), &a)
	return a
}

// Group returns the analytics of groupID at the current ledger version.
func (v *Views) Group(ctx context.Context, groupID string) calculator.GroupAnalytics {
	if hit, ok := v.groups.Get(ctx, cache.Key(groupKind, v.ledger.Epoch(), v.ledger.Version(), groupID)); ok {
		return *hit
	}
	snap, version := v.ledger.View()
	a := calculator.ComputeGroupAnalytics(snap.Expenses, groupID)
	v.groups.Set(ctx, cache.Key(groupKind, v.ledger.Epoch(), version, groupID), &a)
	return a
}
