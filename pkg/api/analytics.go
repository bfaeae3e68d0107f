package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const AnalyticsServiceName = packageName + ".AnalyticsService"

const (
	AnalyticsServiceGetUserAnalyticsProcedure    = "/" + AnalyticsServiceName + "/GetUserAnalytics"
	AnalyticsServiceGetGroupAnalyticsProcedure   = "/" + AnalyticsServiceName + "/GetGroupAnalytics"
	AnalyticsServiceGetForecastProcedure         = "/" + AnalyticsServiceName + "/GetForecast"
	AnalyticsServiceGetAnomaliesProcedure        = "/" + AnalyticsServiceName + "/GetAnomalies"
	AnalyticsServiceGetPersonalityProcedure      = "/" + AnalyticsServiceName + "/GetPersonality"
	AnalyticsServiceGetGroupHealthProcedure      = "/" + AnalyticsServiceName + "/GetGroupHealth"
	AnalyticsServiceGetSettlementAdviceProcedure = "/" + AnalyticsServiceName + "/GetSettlementAdvice"
	AnalyticsServiceGetSmartTipProcedure         = "/" + AnalyticsServiceName + "/GetSmartTip"
)

// AnalyticsServiceHandler is implemented by the server.
type AnalyticsServiceHandler interface {
	GetUserAnalytics(context.Context, *connect.Request[GetUserAnalyticsRequest]) (*connect.Response[GetUserAnalyticsResponse], error)
	GetGroupAnalytics(context.Context, *connect.Request[GetGroupAnalyticsRequest]) (*connect.Response[GetGroupAnalyticsResponse], error)
	GetForecast(context.Context, *connect.Request[GetForecastRequest]) (*connect.Response[GetForecastResponse], error)
	GetAnomalies(context.Context, *connect.Request[GetAnomaliesRequest]) (*connect.Response[GetAnomaliesResponse], error)
	GetPersonality(context.Context, *connect.Request[GetPersonalityRequest]) (*connect.Response[GetPersonalityResponse], error)
	GetGroupHealth(context.Context, *connect.Request[GetGroupHealthRequest]) (*connect.Response[GetGroupHealthResponse], error)
	GetSettlementAdvice(context.Context, *connect.Request[GetSettlementAdviceRequest]) (*connect.Response[GetSettlementAdviceResponse], error)
	GetSmartTip(context.Context, *connect.Request[GetSmartTipRequest]) (*connect.Response[GetSmartTipResponse], error)
}

// NewAnalyticsServiceHandler returns the path to mount svc on and its handler.
func NewAnalyticsServiceHandler(svc AnalyticsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(AnalyticsServiceGetUserAnalyticsProcedure, unaryHandler(AnalyticsServiceGetUserAnalyticsProcedure, svc.GetUserAnalytics, opts))
	mux.Handle(AnalyticsServiceGetGroupAnalyticsProcedure, unaryHandler(AnalyticsServiceGetGroupAnalyticsProcedure, svc.GetGroupAnalytics, opts))
	mux.Handle(AnalyticsServiceGetForecastProcedure, unaryHandler(AnalyticsServiceGetForecastProcedure, svc.GetForecast, opts))
	mux.Handle(AnalyticsServiceGetAnomaliesProcedure, unaryHandler(AnalyticsServiceGetAnomaliesProcedure, svc.GetAnomalies, opts))
	mux.Handle(AnalyticsServiceGetPersonalityProcedure, unaryHandler(AnalyticsServiceGetPersonalityProcedure, svc.GetPersonality, opts))
	mux.Handle(AnalyticsServiceGetGroupHealthProcedure, unaryHandler(AnalyticsServiceGetGroupHealthProcedure, svc.GetGroupHealth, opts))
	mux.Handle(AnalyticsServiceGetSettlementAdviceProcedure, unaryHandler(AnalyticsServiceGetSettlementAdviceProcedure, svc.GetSettlementAdvice, opts))
	mux.Handle(AnalyticsServiceGetSmartTipProcedure, unaryHandler(AnalyticsServiceGetSmartTipProcedure, svc.GetSmartTip, opts))
	return "/" + AnalyticsServiceName + "/", mux
}

type AnalyticsServiceClient struct {
	getUserAnalytics    *connect.Client[GetUserAnalyticsRequest, GetUserAnalyticsResponse]
	getGroupAnalytics   *connect.Client[GetGroupAnalyticsRequest, GetGroupAnalyticsResponse]
	getForecast         *connect.Client[GetForecastRequest, GetForecastResponse]
	getAnomalies        *connect.Client[GetAnomaliesRequest, GetAnomaliesResponse]
	getPersonality      *connect.Client[GetPersonalityRequest, GetPersonalityResponse]
	getGroupHealth      *connect.Client[GetGroupHealthRequest, GetGroupHealthResponse]
	getSettlementAdvice *connect.Client[GetSettlementAdviceRequest, GetSettlementAdviceResponse]
	getSmartTip         *connect.Client[GetSmartTipRequest, GetSmartTipResponse]
}

func NewAnalyticsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AnalyticsServiceClient {
	return &AnalyticsServiceClient{
		getUserAnalytics:    unaryClient[GetUserAnalyticsRequest, GetUserAnalyticsResponse](httpClient, baseURL, AnalyticsServiceGetUserAnalyticsProcedure, opts),
		getGroupAnalytics:   unaryClient[GetGroupAnalyticsRequest, GetGroupAnalyticsResponse](httpClient, baseURL, AnalyticsServiceGetGroupAnalyticsProcedure, opts),
		getForecast:         unaryClient[GetForecastRequest, GetForecastResponse](httpClient, baseURL, AnalyticsServiceGetForecastProcedure, opts),
		getAnomalies:        unaryClient[GetAnomaliesRequest, GetAnomaliesResponse](httpClient, baseURL, AnalyticsServiceGetAnomaliesProcedure, opts),
		getPersonality:      unaryClient[GetPersonalityRequest, GetPersonalityResponse](httpClient, baseURL, AnalyticsServiceGetPersonalityProcedure, opts),
		getGroupHealth:      unaryClient[GetGroupHealthRequest, GetGroupHealthResponse](httpClient, baseURL, AnalyticsServiceGetGroupHealthProcedure, opts),
		getSettlementAdvice: unaryClient[GetSettlementAdviceRequest, GetSettlementAdviceResponse](httpClient, baseURL, AnalyticsServiceGetSettlementAdviceProcedure, opts),
		getSmartTip:         unaryClient[GetSmartTipRequest, GetSmartTipResponse](httpClient, baseURL, AnalyticsServiceGetSmartTipProcedure, opts),
	}
}

func (c *AnalyticsServiceClient) GetUserAnalytics(ctx context.Context, req *connect.Request[GetUserAnalyticsRequest]) (*connect.Response[GetUserAnalyticsResponse], error) {
	return c.getUserAnalytics.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetGroupAnalytics(ctx context.Context, req *connect.Request[GetGroupAnalyticsRequest]) (*connect.Response[GetGroupAnalyticsResponse], error) {
	return c.getGroupAnalytics.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetForecast(ctx context.Context, req *connect.Request[GetForecastRequest]) (*connect.Response[GetForecastResponse], error) {
	return c.getForecast.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetAnomalies(ctx context.Context, req *connect.Request[GetAnomaliesRequest]) (*connect.Response[GetAnomaliesResponse], error) {
	return c.getAnomalies.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetPersonality(ctx context.Context, req *connect.Request[GetPersonalityRequest]) (*connect.Response[GetPersonalityResponse], error) {
	return c.getPersonality.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetGroupHealth(ctx context.Context, req *connect.Request[GetGroupHealthRequest]) (*connect.Response[GetGroupHealthResponse], error) {
	return c.getGroupHealth.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetSettlementAdvice(ctx context.Context, req *connect.Request[GetSettlementAdviceRequest]) (*connect.Response[GetSettlementAdviceResponse], error) {
	return c.getSettlementAdvice.CallUnary(ctx, req)
}

func (c *AnalyticsServiceClient) GetSmartTip(ctx context.Context, req *connect.Request[GetSmartTipRequest]) (*connect.Response[GetSmartTipResponse], error) {
	return c.getSmartTip.CallUnary(ctx, req)
}
