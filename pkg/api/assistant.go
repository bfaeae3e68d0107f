package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const AssistantServiceName = packageName + ".AssistantService"

const AssistantServiceAskProcedure = "/" + AssistantServiceName + "/Ask"

// AssistantServiceHandler is implemented by the server.
type AssistantServiceHandler interface {
	Ask(context.Context, *connect.Request[AskRequest]) (*connect.Response[AskResponse], error)
}

// NewAssistantServiceHandler returns the path to mount svc on and its handler.
func NewAssistantServiceHandler(svc AssistantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return AssistantServiceAskProcedure, unaryHandler(AssistantServiceAskProcedure, svc.Ask, opts)
}

type AssistantServiceClient struct {
	ask *connect.Client[AskRequest, AskResponse]
}

func NewAssistantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AssistantServiceClient {
	return &AssistantServiceClient{
		ask: unaryClient[AskRequest, AskResponse](httpClient, baseURL, AssistantServiceAskProcedure, opts),
	}
}

func (c *AssistantServiceClient) Ask(ctx context.Context, req *connect.Request[AskRequest]) (*connect.Response[AskResponse], error) {
	return c.ask.CallUnary(ctx, req)
}
