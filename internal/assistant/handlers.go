package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/splitsense/internal/calculator"
	"github.com/mmynk/splitsense/internal/insight"
	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
)

// recentLimit is how many expenses the history answer lists.
const recentLimit = 5

// defaultGroupType is the type given to groups created from text.
const defaultGroupType = "Trip"

func (in *Interpreter) navigate(_ context.Context, _ *query) (Reply, error) {
	return Reply{Text: "Opening your main dashboard.", Kind: KindAction, Data: Navigation{Route: "/app"}}, nil
}

// addExpense handles "add 300 for pizza paid by jay". The expense goes to the
// named group, or else the payer's first group, split across its members.
func (in *Interpreter) addExpense(ctx context.Context, q *query) (Reply, error) {
	m := addExpensePattern.FindStringSubmatch(q.text)
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return textReply(fmt.Sprintf("%q is not an amount I understand.", m[1])), nil
	}
	description, payerName := m[2], strings.ToLower(m[3])

	var payer *models.User
	for i := range q.snap.Users {
		if strings.Contains(strings.ToLower(q.snap.Users[i].Name), payerName) {
			payer = &q.snap.Users[i]
			break
		}
	}
	if payer == nil {
		names := make([]string, len(q.snap.Users))
		for i, u := range q.snap.Users {
			names[i] = u.Name
		}
		return textReply(fmt.Sprintf("Could not find user %q. Available users: %s", m[3], strings.Join(names, ", "))), nil
	}

	group := q.group
	if group == nil {
		for i := range q.snap.Groups {
			if q.snap.Groups[i].HasMember(payer.ID) {
				group = &q.snap.Groups[i]
				break
			}
		}
	}
	if group == nil {
		return textReply(fmt.Sprintf("%s is not in any group yet. Create a group first.", payer.Name)), nil
	}

	draft, err := in.ledger.DraftExpense(ledger.ExpenseDraft{
		Description: description,
		Amount:      amount,
		GroupID:     group.ID,
		PaidBy:      payer.ID,
	}, q.actingID, in.now())
	if err != nil {
		return rejected(err)
	}
	expense, err := in.recorder.AppendExpense(ctx, draft)
	if err != nil {
		return rejectedOrFailed(err)
	}

	return Reply{
		Text: fmt.Sprintf("Added expense: %s for $%s.", description, strconv.FormatFloat(amount, 'f', -1, 64)),
		Kind: KindExpense,
		Data: expense,
	}, nil
}

// createGroup handles "create a goa group with jay and ram". The acting user
// is always the first member; named roster users follow in roster order.
func (in *Interpreter) createGroup(ctx context.Context, q *query) (Reply, error) {
	m := createGroupPattern.FindStringSubmatch(q.text)
	name := strings.TrimSpace(m[1])

	members := []string{q.actingID}
	with := extractEntities(m[2], q.snap, q.actingID)
	for _, u := range with.users {
		if u.ID != q.actingID {
			members = append(members, u.ID)
		}
	}

	group, err := in.recorder.AppendGroup(ctx, ledger.DraftGroup(name, defaultGroupType, members, in.now()))
	if err != nil {
		return rejectedOrFailed(err)
	}
	return Reply{Text: fmt.Sprintf("Created group %q.", name), Kind: KindGroup, Data: group}, nil
}

func (in *Interpreter) prediction(_ context.Context, q *query) (Reply, error) {
	return Reply{
		Text: "Based on your recent habits, your next month's spending is forecasted.",
		Kind: KindPrediction,
		Data: insight.PredictNextMonth(q.snap.Expenses, q.actingID),
	}, nil
}

func (in *Interpreter) personality(ctx context.Context, q *query) (Reply, error) {
	return Reply{
		Text: "Here is your spending personality analysis.",
		Kind: KindPersonality,
		Data: insight.ClassifyPersonality(in.views.User(ctx, q.actingID)),
	}, nil
}

func (in *Interpreter) anomalies(_ context.Context, q *query) (Reply, error) {
	found := insight.DetectAnomalies(q.snap.Expenses, q.actingID)
	if len(found) == 0 {
		return textReply("No unusual spending detected recently. Good job!"), nil
	}
	return Reply{
		Text: fmt.Sprintf("Found %d unusual expenses that are higher than average.", len(found)),
		Kind: KindAnomalies,
		Data: found,
	}, nil
}

func (in *Interpreter) settlement(ctx context.Context, q *query) (Reply, error) {
	advice := insight.SuggestSettlement(in.views.User(ctx, q.actingID))
	if advice.Owed {
		return textReply("Good news! You don't owe anyone right now. You are actually owed money."), nil
	}
	if advice.To == "" {
		return textReply("You owe a little overall, but no single person is waiting on you."), nil
	}
	creditor := "Unknown"
	if u, ok := q.user(advice.To); ok {
		creditor = u.Name
	}
	return Reply{
		Text: fmt.Sprintf("You should prioritize settling up with %s.", creditor),
		Kind: KindSettlement,
		Data: Settlement{To: creditor, Amount: advice.Amount},
	}, nil
}

func (in *Interpreter) smartTip(ctx context.Context, q *query) (Reply, error) {
	tip := insight.SmartTip(in.views.User(ctx, q.actingID))
	if tip.InsufficientData {
		return textReply(tip.Text), nil
	}
	return Reply{Text: tip.Text, Kind: KindTip}, nil
}

// groupHealth scores the named group, or the first group when none is named.
func (in *Interpreter) groupHealth(ctx context.Context, q *query) (Reply, error) {
	group := q.group
	if group == nil && len(q.snap.Groups) > 0 {
		group = &q.snap.Groups[0]
	}
	if group == nil {
		return textReply("No groups found to analyze."), nil
	}

	h := insight.GroupHealth(in.views.Group(ctx, group.ID))
	return Reply{
		Text: fmt.Sprintf("Health Score for %q:", group.Name),
		Kind: KindHealth,
		Data: HealthCard{Score: h.Score, Status: h.Status, Color: h.Color, GroupName: group.Name},
	}, nil
}

// trend charts the first named user's monthly spending, or the acting user's.
func (in *Interpreter) trend(ctx context.Context, q *query) (Reply, error) {
	subject, ok := q.user(q.actingID)
	if len(q.users) > 0 {
		subject, ok = q.users[0], true
	}
	if !ok {
		subject = models.User{ID: q.actingID, Name: "you"}
	}

	history := in.views.User(ctx, subject.ID).SpendingHistory
	if len(history) == 0 {
		return textReply(fmt.Sprintf("Not enough data to show a trend for %s yet.", subject.Name)), nil
	}

	whose := "your"
	if subject.ID != q.actingID {
		whose = subject.Name + "'s"
	}
	return Reply{
		Text: fmt.Sprintf("Here is %s spending habit over time.", whose),
		Kind: KindTrendLine,
		Data: history,
	}, nil
}

func (in *Interpreter) categoryBar(ctx context.Context, q *query) (Reply, error) {
	return Reply{
		Text: "Here is your spending compared across categories.",
		Kind: KindBar,
		Data: in.views.User(ctx, q.actingID).CategoryBreakdown,
	}, nil
}

// entity answers questions naming a group and/or users. Per-member breakdowns
// win when a group is named with "breakdown", "wise" or "split" and either no
// user is named or the question asks about members.
func (in *Interpreter) entity(ctx context.Context, q *query) (Reply, error) {
	if q.match(entitySpendPattern) {
		if q.group != nil && (len(q.users) == 0 || q.match(userIntentPattern)) && q.match(memberWisePattern) {
			return in.memberBreakdown(ctx, q, q.group)
		}
		return in.entitySpending(ctx, q)
	}
	return in.memberBreakdown(ctx, q, q.group)
}

func (in *Interpreter) memberBreakdown(ctx context.Context, q *query, group *models.Group) (Reply, error) {
	breakdown := in.views.Group(ctx, group.ID).MemberBreakdown()
	for i := range breakdown {
		breakdown[i].Name = q.firstName(breakdown[i].Name)
	}
	return Reply{
		Text: fmt.Sprintf("Member spending breakdown for %s (Share):", group.Name),
		Kind: KindBar,
		Data: breakdown,
	}, nil
}

// spentBy is a user's total share, limited to group when one is named.
func (in *Interpreter) spentBy(ctx context.Context, q *query, userID string) float64 {
	if q.group != nil {
		return calculator.SpendInGroup(q.snap.Expenses, q.group.ID, userID)
	}
	return in.views.User(ctx, userID).TotalShare
}

func (in *Interpreter) entitySpending(ctx context.Context, q *query) (Reply, error) {
	switch {
	case len(q.users) > 1:
		data := make([]calculator.NamedValue, len(q.users))
		names := make([]string, len(q.users))
		for i, u := range q.users {
			data[i] = calculator.NamedValue{Name: u.FirstName(), Value: in.spentBy(ctx, q, u.ID)}
			names[i] = u.Name
		}
		return Reply{
			Text: "Spending comparison: " + strings.Join(names, " vs "),
			Kind: KindBar,
			Data: data,
		}, nil

	case len(q.users) == 1:
		u := q.users[0]
		scope := "total"
		if q.group != nil {
			scope = "in " + q.group.Name
		}
		return textReply(fmt.Sprintf("%s has spent $%.2f %s.", u.Name, in.spentBy(ctx, q, u.ID), scope)), nil

	default:
		return Reply{
			Text: fmt.Sprintf("Spending breakdown for %s.", q.group.Name),
			Kind: KindSpending,
			Data: in.views.Group(ctx, q.group.ID).CategoryBreakdown,
		}, nil
	}
}

// owe charts every non-zero counterparty balance of the acting user, in
// roster order.
func (in *Interpreter) owe(ctx context.Context, q *query) (Reply, error) {
	a := in.views.User(ctx, q.actingID)

	ids := make([]string, 0, len(a.BalanceMap))
	for id, amount := range a.BalanceMap {
		if amount != 0 {
			ids = append(ids, id)
		}
	}
	order := make(map[string]int, len(q.snap.Users))
	for i, u := range q.snap.Users {
		order[u.ID] = i
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, iok := order[ids[i]]
		oj, jok := order[ids[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return ids[i] < ids[j]
	})

	data := make([]calculator.NamedValue, len(ids))
	for i, id := range ids {
		name := "User"
		if u, ok := q.user(id); ok {
			name = u.FirstName()
		}
		data[i] = calculator.NamedValue{Name: name, Value: math.Abs(a.BalanceMap[id])}
	}

	text := fmt.Sprintf("You owe a total of $%.2f. Breakdown:", math.Abs(a.NetBalance))
	if a.NetBalance >= 0 {
		text = fmt.Sprintf("You are owed $%.2f. Breakdown:", a.NetBalance)
	}
	return Reply{Text: text, Kind: KindBalance, Data: data}, nil
}

func (in *Interpreter) spending(ctx context.Context, q *query) (Reply, error) {
	a := in.views.User(ctx, q.actingID)
	top := "None"
	if c, ok := calculator.TopCategory(a.CategoryBreakdown); ok {
		top = c.Name
	}
	return Reply{
		Text: fmt.Sprintf("You have spent $%.2f total. Top category: %s.", a.TotalShare, top),
		Kind: KindSpending,
		Data: a.CategoryBreakdown,
	}, nil
}

func (in *Interpreter) recentExpenses(_ context.Context, q *query) (Reply, error) {
	expenses := q.snap.Expenses
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	if len(expenses) > recentLimit {
		expenses = expenses[:recentLimit]
	}
	return Reply{
		Text: fmt.Sprintf("Here are your %d most recent expenses.", len(expenses)),
		Kind: KindExpenses,
		Data: expenses,
	}, nil
}

func (in *Interpreter) listGroups(_ context.Context, q *query) (Reply, error) {
	return Reply{Text: "Here are all your active groups.", Kind: KindGroups, Data: q.snap.Groups}, nil
}

// rejected turns a validation failure into a user-facing message.
func rejected(err error) (Reply, error) {
	return textReply("I couldn't do that: " + err.Error()), nil
}

// rejectedOrFailed answers validation failures with a message and returns
// anything else, such as a storage failure, as an error.
func rejectedOrFailed(err error) (Reply, error) {
	if errors.Is(err, ledger.ErrInvalidReference) ||
		errors.Is(err, ledger.ErrInvalidRecord) ||
		errors.Is(err, ledger.ErrDuplicateID) ||
		errors.Is(err, calculator.ErrInvalidSplit) {
		return rejected(err)
	}
	return Reply{}, err
}
