package api

import "time"

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type Split struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	PaidBy      string    `json:"paid_by"`
	GroupID     string    `json:"group_id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Splits      []Split   `json:"splits"`
}

// NamedValue is the {name, value} pair chart renderers consume.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyAmount is one point of a spending history, keyed YYYY-MM.
type MonthlyAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type UserAnalytics struct {
	UserID            string             `json:"user_id"`
	TotalPaid         float64            `json:"total_paid"`
	TotalShare        float64            `json:"total_share"`
	NetBalance        float64            `json:"net_balance"`
	BalanceMap        map[string]float64 `json:"balance_map"`
	CategoryBreakdown []NamedValue       `json:"category_breakdown"`
	SpendingHistory   []MonthlyAmount    `json:"spending_history"`
}

type MemberStats struct {
	Paid  float64 `json:"paid"`
	Share float64 `json:"share"`
	Net   float64 `json:"net"`
}

type GroupAnalytics struct {
	GroupID           string                 `json:"group_id"`
	TotalGroupSpend   float64                `json:"total_group_spend"`
	MemberStats       map[string]MemberStats `json:"member_stats"`
	ExpenseCount      int                    `json:"expense_count"`
	CategoryBreakdown []NamedValue           `json:"category_breakdown"`
	MemberBreakdown   []NamedValue           `json:"member_breakdown"`
}

type Forecast struct {
	NextMonth        float64 `json:"next_month"`
	Confidence       int     `json:"confidence"`
	Trend            string  `json:"trend"`
	Reason           string  `json:"reason"`
	InsufficientData bool    `json:"insufficient_data,omitempty"`
}

type Anomaly struct {
	Expense Expense `json:"expense"`
	Share   float64 `json:"share"`
	Reason  string  `json:"reason"`
}

type Personality struct {
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type Health struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

type SettlementAdvice struct {
	Owed   bool    `json:"owed"`
	To     string  `json:"to,omitempty"`
	ToName string  `json:"to_name,omitempty"`
	Amount float64 `json:"amount"`
}

type Tip struct {
	Category         string `json:"category,omitempty"`
	Text             string `json:"text"`
	InsufficientData bool   `json:"insufficient_data,omitempty"`
}
