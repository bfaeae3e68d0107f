package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const LedgerServiceName = packageName + ".LedgerService"

const (
	LedgerServiceAppendExpenseProcedure = "/" + LedgerServiceName + "/AppendExpense"
	LedgerServiceRemoveExpenseProcedure = "/" + LedgerServiceName + "/RemoveExpense"
	LedgerServiceListExpensesProcedure  = "/" + LedgerServiceName + "/ListExpenses"
	LedgerServiceAppendGroupProcedure   = "/" + LedgerServiceName + "/AppendGroup"
	LedgerServiceListGroupsProcedure    = "/" + LedgerServiceName + "/ListGroups"
	LedgerServiceGetGroupProcedure      = "/" + LedgerServiceName + "/GetGroup"
)

// LedgerServiceHandler is implemented by the server.
type LedgerServiceHandler interface {
	AppendExpense(context.Context, *connect.Request[AppendExpenseRequest]) (*connect.Response[AppendExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	AppendGroup(context.Context, *connect.Request[AppendGroupRequest]) (*connect.Response[AppendGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
}

// NewLedgerServiceHandler returns the path to mount svc on and its handler.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAppendExpenseProcedure, unaryHandler(LedgerServiceAppendExpenseProcedure, svc.AppendExpense, opts))
	mux.Handle(LedgerServiceRemoveExpenseProcedure, unaryHandler(LedgerServiceRemoveExpenseProcedure, svc.RemoveExpense, opts))
	mux.Handle(LedgerServiceListExpensesProcedure, unaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts))
	mux.Handle(LedgerServiceAppendGroupProcedure, unaryHandler(LedgerServiceAppendGroupProcedure, svc.AppendGroup, opts))
	mux.Handle(LedgerServiceListGroupsProcedure, unaryHandler(LedgerServiceListGroupsProcedure, svc.ListGroups, opts))
	mux.Handle(LedgerServiceGetGroupProcedure, unaryHandler(LedgerServiceGetGroupProcedure, svc.GetGroup, opts))
	return "/" + LedgerServiceName + "/", mux
}

type LedgerServiceClient struct {
	appendExpense *connect.Client[AppendExpenseRequest, AppendExpenseResponse]
	removeExpense *connect.Client[RemoveExpenseRequest, RemoveExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	appendGroup   *connect.Client[AppendGroupRequest, AppendGroupResponse]
	listGroups    *connect.Client[ListGroupsRequest, ListGroupsResponse]
	getGroup      *connect.Client[GetGroupRequest, GetGroupResponse]
}

func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	return &LedgerServiceClient{
		appendExpense: unaryClient[AppendExpenseRequest, AppendExpenseResponse](httpClient, baseURL, LedgerServiceAppendExpenseProcedure, opts),
		removeExpense: unaryClient[RemoveExpenseRequest, RemoveExpenseResponse](httpClient, baseURL, LedgerServiceRemoveExpenseProcedure, opts),
		listExpenses:  unaryClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL, LedgerServiceListExpensesProcedure, opts),
		appendGroup:   unaryClient[AppendGroupRequest, AppendGroupResponse](httpClient, baseURL, LedgerServiceAppendGroupProcedure, opts),
		listGroups:    unaryClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL, LedgerServiceListGroupsProcedure, opts),
		getGroup:      unaryClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL, LedgerServiceGetGroupProcedure, opts),
	}
}

func (c *LedgerServiceClient) AppendExpense(ctx context.Context, req *connect.Request[AppendExpenseRequest]) (*connect.Response[AppendExpenseResponse], error) {
	return c.appendExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AppendGroup(ctx context.Context, req *connect.Request[AppendGroupRequest]) (*connect.Response[AppendGroupResponse], error) {
	return c.appendGroup.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}
