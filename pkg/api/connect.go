package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Package name prefix shared by every service.
const packageName = "splitsense.v1"

func unaryHandler[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) *connect.Handler {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	return connect.NewUnaryHandler(procedure, fn, opts...)
}

func unaryClient[Req, Res any](
	httpClient connect.HTTPClient,
	baseURL, procedure string,
	opts []connect.ClientOption,
) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
