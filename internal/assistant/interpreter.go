package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmynk/splitsense/internal/analytics"
	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
)

// Recorder commits interpreter-created records. The service layer's
// implementation also persists the ledger and publishes events.
type Recorder interface {
	AppendExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	AppendGroup(ctx context.Context, group models.Group) (models.Group, error)
}

var (
	navigationPattern  = regexp.MustCompile(`(?i)dashboard|home`)
	addExpensePattern  = regexp.MustCompile(`(?i)add\s+(?:₹|\$)?(\d+(?:\.\d{2})?)\s+(?:for\s+)?(.+?)\s+(?:paid\s+by\s+)(\w+)`)
	createGroupPattern = regexp.MustCompile(`(?i)create\s+(?:a\s+)?(.+?)\s+group\s+with\s+(.+)`)
	predictPattern     = regexp.MustCompile(`(?i)predict|future|forecast`)
	personalityPattern = regexp.MustCompile(`(?i)personality|spender\s+type|what\s+kind\s+of\s+spender`)
	anomalyPattern     = regexp.MustCompile(`(?i)unusual|anomaly|weird|spike`)
	settlePattern      = regexp.MustCompile(`(?i)settle|pay|clear debt`)
	tipPattern         = regexp.MustCompile(`(?i)save|tip|advice|budget`)
	healthPattern      = regexp.MustCompile(`(?i)health|score|safe`)
	trendPattern       = regexp.MustCompile(`(?i)line|chart|trend`)
	barPattern         = regexp.MustCompile(`(?i)compare|bar|breakdown`)
	entitySpendPattern = regexp.MustCompile(`(?i)spend|spent|expenses|breakdown|cost`)
	memberWisePattern  = regexp.MustCompile(`(?i)breakdown|wise|split`)
	userIntentPattern  = regexp.MustCompile(`(?i)user|member|person|who`)
	owePattern         = regexp.MustCompile(`(?i)owe|debt|balance`)
	spendPattern       = regexp.MustCompile(`(?i)spend|spent|pie`)
	historyPattern     = regexp.MustCompile(`(?i)expenses|history|transactions`)
	groupsPattern      = regexp.MustCompile(`(?i)groups`)
)

// fallbackText is the answer when no rule matches.
const fallbackText = "I didn't quite catch that. Try 'Predict expenses', 'Group 1 health', or 'Vansh spending'."

// query is one question with everything the rules need to decide and answer.
type query struct {
	text     string
	actingID string
	snap     *models.Snapshot
	entities
}

func (q *query) match(re *regexp.Regexp) bool { return re.MatchString(q.text) }

func (q *query) user(id string) (models.User, bool) {
	for _, u := range q.snap.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// firstName is the display label used in charts. Unknown IDs render as "Unknown".
func (q *query) firstName(id string) string {
	if u, ok := q.user(id); ok {
		return u.FirstName()
	}
	return "Unknown"
}

// rule pairs a predicate with the handler that answers when it holds.
type rule struct {
	name   string
	when   func(q *query) bool
	answer func(ctx context.Context, q *query) (Reply, error)
}

// Interpreter maps free text to ledger queries and actions with an ordered
// rule list. The first rule whose predicate holds answers; order is priority:
// navigation, add expense, create group, prediction, personality, anomalies,
// settlement, tip, health, trend, category bar, entity-specific questions,
// then the global owe/spend/history/groups fallbacks.
type Interpreter struct {
	ledger   *ledger.Ledger
	views    *analytics.Views
	recorder Recorder
	now      func() time.Time
	rules    []rule
}

// NewInterpreter creates an Interpreter that reads from l and views and
// commits new records through recorder.
func NewInterpreter(l *ledger.Ledger, views *analytics.Views, recorder Recorder) *Interpreter {
	in := &Interpreter{ledger: l, views: views, recorder: recorder, now: time.Now}
	in.rules = []rule{
		{"navigation", func(q *query) bool { return q.match(navigationPattern) }, in.navigate},
		{"add-expense", func(q *query) bool { return q.match(addExpensePattern) }, in.addExpense},
		{"create-group", func(q *query) bool { return q.match(createGroupPattern) }, in.createGroup},
		{"prediction", func(q *query) bool { return q.match(predictPattern) }, in.prediction},
		{"personality", func(q *query) bool { return q.match(personalityPattern) }, in.personality},
		{"anomalies", func(q *query) bool { return q.match(anomalyPattern) }, in.anomalies},
		{"settlement", func(q *query) bool { return q.match(settlePattern) }, in.settlement},
		{"tip", func(q *query) bool { return q.match(tipPattern) }, in.smartTip},
		{"health", func(q *query) bool { return q.match(healthPattern) }, in.groupHealth},
		{"trend", func(q *query) bool { return q.match(trendPattern) }, in.trend},
		{"category-bar", func(q *query) bool {
			return q.match(barPattern) && q.group == nil && len(q.users) == 0
		}, in.categoryBar},
		{"entity", func(q *query) bool {
			return q.group != nil || (len(q.users) > 0 && q.match(entitySpendPattern))
		}, in.entity},
		{"owe", func(q *query) bool { return q.match(owePattern) }, in.owe},
		{"spending", func(q *query) bool { return q.match(spendPattern) }, in.spending},
		{"history", func(q *query) bool { return q.match(historyPattern) }, in.recentExpenses},
		{"groups", func(q *query) bool { return q.match(groupsPattern) }, in.listGroups},
	}
	return in
}

// Interpret answers text on behalf of actingUserID. Errors are returned only
// when committing a new record fails; every other outcome is a Reply.
func (in *Interpreter) Interpret(ctx context.Context, actingUserID, text string) (Reply, error) {
	q, r := in.route(actingUserID, text)
	if r == nil {
		reply := textReply(fallbackText)
		reply.Source = SourceLocal
		return reply, nil
	}

	reply, err := r.answer(ctx, q)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", r.name, err)
	}
	reply.Source = SourceLocal
	return reply, nil
}

// route picks the first rule that holds for text, or nil.
func (in *Interpreter) route(actingUserID, text string) (*query, *rule) {
	text = strings.TrimSpace(text)
	snap := in.ledger.Snapshot()
	q := &query{
		text:     text,
		actingID: actingUserID,
		snap:     snap,
		entities: extractEntities(text, snap, actingUserID),
	}
	for i := range in.rules {
		if in.rules[i].when(q) {
			return q, &in.rules[i]
		}
	}
	return q, nil
}
