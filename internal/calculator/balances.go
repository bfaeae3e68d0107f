package calculator

import (
	"sort"

	"github.com/mmynk/splitsense/internal/models"
)

// NamedValue is a {name, value} pair, the shape chart renderers consume.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyAmount is one point of a spending history series.
type MonthlyAmount struct {
	Date   string  `json:"date"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// UserAnalytics is the balance and spending picture of a single user.
type UserAnalytics struct {
	UserID     string  `json:"user_id"`
	TotalPaid  float64 `json:"total_paid"`  // Amount the user physically paid
	TotalShare float64 `json:"total_share"` // The user's consumption across all expenses
	NetBalance float64 `json:"net_balance"` // Positive = owed money, Negative = owes money

	// BalanceMap holds direct per-counterparty balances.
	// BalanceMap[x] > 0 means x owes the user; < 0 means the user owes x.
	BalanceMap map[string]float64 `json:"balance_map"`

	// CategoryBreakdown sums the user's share per category, in first-seen order.
	CategoryBreakdown []NamedValue `json:"category_breakdown"`

	// SpendingHistory sums the user's share per month, ascending.
	SpendingHistory []MonthlyAmount `json:"spending_history"`
}

// MemberStats is one member's totals within a group.
type MemberStats struct {
	Paid  float64 `json:"paid"`
	Share float64 `json:"share"`
	Net   float64 `json:"net"` // Paid - Share
}

// GroupAnalytics is the spending picture of a single group.
type GroupAnalytics struct {
	GroupID         string                 `json:"group_id"`
	TotalGroupSpend float64                `json:"total_group_spend"`
	MemberStats     map[string]MemberStats `json:"member_stats"`
	ExpenseCount    int                    `json:"expense_count"`

	// CategoryBreakdown sums the full expense amount per category, unlike the
	// user-level breakdown which sums shares.
	CategoryBreakdown []NamedValue `json:"category_breakdown"`
}

// bucket accumulates values per key while remembering first-seen key order.
type bucket struct {
	index  map[string]int
	values []NamedValue
}

func newBucket() *bucket {
	return &bucket{index: make(map[string]int)}
}

func (b *bucket) add(key string, v float64) {
	if i, ok := b.index[key]; ok {
		b.values[i].Value += v
		return
	}
	b.index[key] = len(b.values)
	b.values = append(b.values, NamedValue{Name: key, Value: v})
}

// ComputeUserAnalytics computes a user's totals and direct balances across
// the full expense collection.
//
// Algorithm, per expense:
// - If the user paid: TotalPaid += amount
// - If the user is in the splits: TotalShare, the category bucket and the
// month bucket all grow by the user's share
// - Debt propagation is single-hop: as payer, every other participant owes
// the user their share; as a non-paying participant, the user owes the payer
//
// BalanceMap is not a settlement plan: no netting across third parties is done.
func ComputeUserAnalytics(expenses []models.Expense, userID string) UserAnalytics {
	result := UserAnalytics{
		UserID:     userID,
		BalanceMap: make(map[string]float64),
	}
	categories := newBucket()
	months := make(map[string]float64)

	for _, expense := range expenses {
		isPayer := expense.PaidBy == userID
		myShare, participates := expense.ShareOf(userID)

		if isPayer {
			result.TotalPaid += expense.Amount
		}
		if participates {
			result.TotalShare += myShare
			categories.add(expense.Category, myShare)
			months[expense.MonthKey()] += myShare
		}

		if isPayer {
			// I paid, collect from others
			for _, split := range expense.Splits {
				if split.UserID != userID {
					result.BalanceMap[split.UserID] += split.Amount
				}
			}
		} else if participates {
			// I didn't pay, I owe the payer my share
			result.BalanceMap[expense.PaidBy] -= myShare
		}
	}

	result.NetBalance = result.TotalPaid - result.TotalShare
	result.CategoryBreakdown = categories.values
	if result.CategoryBreakdown == nil {
		result.CategoryBreakdown = []NamedValue{}
	}

	result.SpendingHistory = make([]MonthlyAmount, 0, len(months))
	for month, amount := range months {
		result.SpendingHistory = append(result.SpendingHistory, MonthlyAmount{Date: month, Amount: amount})
	}
	// Zero-padded YYYY-MM keys sort chronologically as strings
	sort.Slice(result.SpendingHistory, func(i, j int) bool {
		return result.SpendingHistory[i].Date < result.SpendingHistory[j].Date
	})

	return result
}

// ComputeGroupAnalytics computes every member's paid/share/net totals for the
// expenses of one group.
//
// Members are whoever paid or appears in a split of the group's expenses; the
// group's configured member list is not consulted.
func ComputeGroupAnalytics(expenses []models.Expense, groupID string) GroupAnalytics {
	result := GroupAnalytics{
		GroupID:     groupID,
		MemberStats: make(map[string]MemberStats),
	}
	categories := newBucket()

	for _, expense := range expenses {
		if expense.GroupID != groupID {
			continue
		}
		result.ExpenseCount++
		result.TotalGroupSpend += expense.Amount
		categories.add(expense.Category, expense.Amount)

		// Credit payer
		payer := result.MemberStats[expense.PaidBy]
		payer.Paid += expense.Amount
		result.MemberStats[expense.PaidBy] = payer

		// Debit splitters
		for _, split := range expense.Splits {
			member := result.MemberStats[split.UserID]
			member.Share += split.Amount
			result.MemberStats[split.UserID] = member
		}
	}

	for id, stats := range result.MemberStats {
		stats.Net = stats.Paid - stats.Share
		result.MemberStats[id] = stats
	}

	result.CategoryBreakdown = categories.values
	if result.CategoryBreakdown == nil {
		result.CategoryBreakdown = []NamedValue{}
	}
	return result
}

// MemberBreakdown returns each member's share as {userID, share} pairs,
// largest share first. Ties are ordered by user ID.
func (g GroupAnalytics) MemberBreakdown() []NamedValue {
	out := make([]NamedValue, 0, len(g.MemberStats))
	for id, stats := range g.MemberStats {
		out = append(out, NamedValue{Name: id, Value: stats.Share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SpendInGroup returns the sum of userID's shares across the expenses of one group.
func SpendInGroup(expenses []models.Expense, groupID, userID string) float64 {
	var total float64
	for _, expense := range expenses {
		if expense.GroupID != groupID {
			continue
		}
		if share, ok := expense.ShareOf(userID); ok {
			total += share
		}
	}
	return total
}

// TopCategory returns the breakdown entry with the largest value.
// The boolean is false when the breakdown is empty.
func TopCategory(breakdown []NamedValue) (NamedValue, bool) {
	if len(breakdown) == 0 {
		return NamedValue{}, false
	}
	top := breakdown[0]
	for _, nv := range breakdown[1:] {
		if nv.Value > top.Value {
			top = nv
		}
	}
	return top, true
}
