package service

import (
	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/insight"
	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/pkg/api"
)

func toAPIUser(u models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

func toAPIUsers(users []models.User) []api.User {
	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}

func toAPIGroup(g models.Group) api.Group {
	return api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   append([]string{}, g.Members...),
		Type:      g.Type,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIGroups(groups []models.Group) []api.Group {
	out := make([]api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	return out
}

func toAPIExpense(e models.Expense) api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{UserID: s.UserID, Amount: s.Amount}
	}
	return api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		GroupID:     e.GroupID,
		Date:        e.Date,
		Category:    e.Category,
		Splits:      splits,
	}
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPINamedValues(values []calculator.NamedValue) []api.NamedValue {
	out := make([]api.NamedValue, len(values))
	for i, nv := range values {
		out[i] = api.NamedValue{Name: nv.Name, Value: nv.Value}
	}
	return out
}

// toAPIUserAnalytics copies a; the source may be shared with the view cache.
func toAPIUserAnalytics(a calculator.UserAnalytics) api.UserAnalytics {
	balances := make(map[string]float64, len(a.BalanceMap))
	for id, v := range a.BalanceMap {
		balances[id] = v
	}
	history := make([]api.MonthlyAmount, len(a.SpendingHistory))
	for i, m := range a.SpendingHistory {
		history[i] = api.MonthlyAmount{Date: m.Date, Amount: m.Amount}
	}
	return api.UserAnalytics{
		UserID:            a.UserID,
		TotalPaid:         a.TotalPaid,
		TotalShare:        a.TotalShare,
		NetBalance:        a.NetBalance,
		BalanceMap:        balances,
		CategoryBreakdown: toAPINamedValues(a.CategoryBreakdown),
		SpendingHistory:   history,
	}
}

func toAPIGroupAnalytics(g calculator.GroupAnalytics) api.GroupAnalytics {
	stats := make(map[string]api.MemberStats, len(g.MemberStats))
	for id, s := range g.MemberStats {
		stats[id] = api.MemberStats{Paid: s.Paid, Share: s.Share, Net: s.Net}
	}
	return api.GroupAnalytics{
		GroupID:           g.GroupID,
		TotalGroupSpend:   g.TotalGroupSpend,
		MemberStats:       stats,
		ExpenseCount:      g.ExpenseCount,
		CategoryBreakdown: toAPINamedValues(g.CategoryBreakdown),
		MemberBreakdown:   toAPINamedValues(g.MemberBreakdown()),
	}
}

func toAPIForecast(f insight.Forecast) api.Forecast {
	return api.Forecast{
		NextMonth:        f.NextMonth,
		Confidence:       f.Confidence,
		Trend:            f.Trend,
		Reason:           f.Reason,
		InsufficientData: f.InsufficientData,
	}
}

func toAPIAnomalies(anomalies []insight.Anomaly) []api.Anomaly {
	out := make([]api.Anomaly, len(anomalies))
	for i, a := range anomalies {
		out[i] = api.Anomaly{Expense: toAPIExpense(a.Expense), Share: a.Share, Reason: a.Reason}
	}
	return out
}
