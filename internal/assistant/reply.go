// Package assistant answers free-text questions about the ledger.
//
// An optional remote language model is asked first; when it fails, times
// out or has nothing to say, a local rule-based Interpreter answers instead.
package assistant

// Reply kinds tell the client how to render Data.
const (
	KindText        = "text"
	KindAction      = "action"
	KindExpense     = "card-expense"
	KindGroup       = "card-group"
	KindPrediction  = "card-prediction"
	KindPersonality = "badge-personality"
	KindAnomalies   = "list-anomalies"
	KindSettlement  = "card-settlement"
	KindTip         = "card-tip"
	KindHealth      = "card-health"
	KindTrendLine   = "chart-trend-line"
	KindBar         = "chart-bar"
	KindSpending    = "chart-spending"
	KindBalance     = "chart-balance"
	KindExpenses    = "list-expenses"
	KindGroups      = "list-groups"
)

// Reply sources
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Reply is an answer to one question.
type Reply struct {
	Text   string `json:"text"`
	Kind   string `json:"kind"`
	Data   any    `json:"data,omitempty"`
	Source string `json:"source,omitempty"`
}

// Navigation is the Data of a KindAction reply.
type Navigation struct {
	Route string `json:"route"`
}

// Settlement is the Data of a KindSettlement reply.
type Settlement struct {
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// HealthCard is the Data of a KindHealth reply.
type HealthCard struct {
	Score     int    `json:"score"`
	Status    string `json:"status"`
	Color     string `json:"color"`
	GroupName string `json:"group_name"`
}

func textReply(text string) Reply {
	return Reply{Text: text, Kind: KindText}
}
