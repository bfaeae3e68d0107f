package api

import "time"

// Validation tags are checked by the service layer before any request
// reaches the ledger.

type LoginRequest struct {
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	UserID string `json:"user_id,omitempty" validate:"required_without=Email"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type AppendExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=200"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	GroupID     string  `json:"group_id" validate:"required"`
	Category    string  `json:"category,omitempty" validate:"max=50"`
	// PaidBy defaults to the caller.
	PaidBy string `json:"paid_by,omitempty"`
	// ParticipantIDs defaults to every group member.
	ParticipantIDs []string `json:"participant_ids,omitempty" validate:"omitempty,unique,dive,required"`
	// Date defaults to now.
	Date *time.Time `json:"date,omitempty"`
}

type AppendExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
}

type RemoveExpenseResponse struct{}

type ListExpensesRequest struct {
	GroupID string `json:"group_id,omitempty"`
	// Limit caps the result to the most recent expenses; 0 means all.
	Limit int `json:"limit,omitempty" validate:"gte=0"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type AppendGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Type string `json:"type,omitempty" validate:"max=50"`
	// Members lists the other members; the caller is always added first.
	Members []string `json:"members,omitempty" validate:"omitempty,unique,dive,required"`
}

type AppendGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupResponse struct {
	Group   Group  `json:"group"`
	Members []User `json:"members"`
}

// Analytics requests with an empty UserID apply to the caller.

type GetUserAnalyticsRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetUserAnalyticsResponse struct {
	Analytics UserAnalytics `json:"analytics"`
}

type GetGroupAnalyticsRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupAnalyticsResponse struct {
	Analytics GroupAnalytics `json:"analytics"`
}

type GetForecastRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetForecastResponse struct {
	Forecast Forecast `json:"forecast"`
}

type GetAnomaliesRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetAnomaliesResponse struct {
	Anomalies []Anomaly `json:"anomalies"`
}

type GetPersonalityRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetPersonalityResponse struct {
	Personality Personality `json:"personality"`
}

type GetGroupHealthRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupHealthResponse struct {
	GroupName string `json:"group_name"`
	Health    Health `json:"health"`
}

type GetSettlementAdviceRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetSettlementAdviceResponse struct {
	Advice SettlementAdvice `json:"advice"`
}

type GetSmartTipRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetSmartTipResponse struct {
	Tip Tip `json:"tip"`
}

type AskRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// AskResponse is the assistant's reply. Kind tells the client how to render
// Data, for example "chart-bar" with a list of NamedValue.
type AskResponse struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
	Data any    `json:"data,omitempty"`
	// Source is "remote" or "local".
	Source string `json:"source"`
}
