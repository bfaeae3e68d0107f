package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const AuthServiceName = packageName + ".AuthService"

const (
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
	AuthServiceListUsersProcedure      = "/" + AuthServiceName + "/ListUsers"
)

// AuthServiceHandler is implemented by the server.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
}

// NewAuthServiceHandler returns the path to mount svc on and its handler.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, unaryHandler(AuthServiceLoginProcedure, svc.Login, opts))
	mux.Handle(AuthServiceGetCurrentUserProcedure, unaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts))
	mux.Handle(AuthServiceListUsersProcedure, unaryHandler(AuthServiceListUsersProcedure, svc.ListUsers, opts))
	return "/" + AuthServiceName + "/", mux
}

type AuthServiceClient struct {
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
	listUsers      *connect.Client[ListUsersRequest, ListUsersResponse]
}

func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{
		login:          unaryClient[LoginRequest, LoginResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		getCurrentUser: unaryClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
		listUsers:      unaryClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL, AuthServiceListUsersProcedure, opts),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}
