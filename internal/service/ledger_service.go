package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/middleware"
	"github.com/mmynk/splitsense/internal/models"
	"github.com/mmynk/splitsense/pkg/api"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	ledger   *ledger.Ledger
	recorder *Recorder
	now      func() time.Time
}

// NewLedgerService creates a LedgerService. Reads go to l, writes through recorder.
func NewLedgerService(l *ledger.Ledger, recorder *Recorder) *LedgerService {
	return &LedgerService{ledger: l, recorder: recorder, now: time.Now}
}

// AppendExpense records an expense paid by the caller unless PaidBy says otherwise.
func (s *LedgerService) AppendExpense(ctx context.Context, req *connect.Request[api.AppendExpenseRequest]) (*connect.Response[api.AppendExpenseResponse], error) {
	callerID := middleware.GetUserID(ctx)
	slog.Info("AppendExpense request received",
		"user_id", callerID,
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"participants", len(req.Msg.ParticipantIDs),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	draft := ledger.ExpenseDraft{
		Description:    req.Msg.Description,
		Amount:         req.Msg.Amount,
		GroupID:        req.Msg.GroupID,
		Category:       req.Msg.Category,
		PaidBy:         req.Msg.PaidBy,
		ParticipantIDs: req.Msg.ParticipantIDs,
	}
	if req.Msg.Date != nil {
		draft.Date = *req.Msg.Date
	}

	expense, err := s.ledger.DraftExpense(draft, callerID, s.now())
	if err != nil {
		slog.Warn("AppendExpense rejected", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}
	if expense, err = s.recorder.AppendExpense(ctx, expense); err != nil {
		slog.Error("AppendExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense appended", "expense_id", expense.ID, "group_id", expense.GroupID)
	return connect.NewResponse(&api.AppendExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// RemoveExpense deletes an expense.
func (s *LedgerService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	slog.Info("RemoveExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.recorder.RemoveExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Warn("RemoveExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense removed", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.RemoveExpenseResponse{}), nil
}

// ListExpenses returns expenses newest first, optionally limited to one group.
func (s *LedgerService) ListExpenses(_ context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if req.Msg.GroupID != "" {
		if _, ok := s.ledger.Group(req.Msg.GroupID); !ok {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: group %q", ledger.ErrNotFound, req.Msg.GroupID))
		}
	}

	var expenses []models.Expense
	for _, e := range s.ledger.Expenses() {
		if req.Msg.GroupID == "" || e.GroupID == req.Msg.GroupID {
			expenses = append(expenses, e)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	if req.Msg.Limit > 0 && len(expenses) > req.Msg.Limit {
		expenses = expenses[:req.Msg.Limit]
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// AppendGroup creates a group with the caller as its first member.
func (s *LedgerService) AppendGroup(ctx context.Context, req *connect.Request[api.AppendGroupRequest]) (*connect.Response[api.AppendGroupResponse], error) {
	callerID := middleware.GetUserID(ctx)
	slog.Info("AppendGroup request received",
		"user_id", callerID,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	members := []string{callerID}
	for _, m := range req.Msg.Members {
		if m != callerID {
			members = append(members, m)
		}
	}

	group, err := s.recorder.AppendGroup(ctx, ledger.DraftGroup(req.Msg.Name, req.Msg.Type, members, s.now()))
	if err != nil {
		slog.Warn("AppendGroup failed", "name", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.AppendGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns every group in creation order.
func (s *LedgerService) ListGroups(_ context.Context, _ *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return connect.NewResponse(&api.ListGroupsResponse{Groups: toAPIGroups(s.ledger.Groups())}), nil
}

// GetGroup returns a group with its members resolved to users.
func (s *LedgerService) GetGroup(_ context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, ok := s.ledger.Group(req.Msg.GroupID)
	if !ok {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID)
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: group %q", ledger.ErrNotFound, req.Msg.GroupID))
	}

	members := make([]api.User, 0, len(group.Members))
	for _, id := range group.Members {
		if u, ok := s.ledger.User(id); ok {
			members = append(members, toAPIUser(u))
		}
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group), Members: members}), nil
}
