package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsense/internal/analytics"
	"github.com/mmynk/splitsense/internal/insight"
	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/middleware"
	"github.com/mmynk/splitsense/pkg/api"
)

var _ api.AnalyticsServiceHandler = (*AnalyticsService)(nil)

// AnalyticsService serves balances, aggregates and insights. User queries are
// total: an unknown user gets zero-valued results. Group queries on an unknown
// group fail with CodeNotFound.
type AnalyticsService struct {
	ledger *ledger.Ledger
	views  *analytics.Views
}

func NewAnalyticsService(l *ledger.Ledger, views *analytics.Views) *AnalyticsService {
	return &AnalyticsService{ledger: l, views: views}
}

// subject is userID, or the caller when empty.
func subject(ctx context.Context, userID string) string {
	if userID != "" {
		return userID
	}
	return middleware.GetUserID(ctx)
}

func (s *AnalyticsService) group(req any, groupID string) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if _, ok := s.ledger.Group(groupID); !ok {
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: group %q", ledger.ErrNotFound, groupID))
	}
	return nil
}

func (s *AnalyticsService) GetUserAnalytics(ctx context.Context, req *connect.Request[api.GetUserAnalyticsRequest]) (*connect.Response[api.GetUserAnalyticsResponse], error) {
	a := s.views.User(ctx, subject(ctx, req.Msg.UserID))
	return connect.NewResponse(&api.GetUserAnalyticsResponse{Analytics: toAPIUserAnalytics(a)}), nil
}

func (s *AnalyticsService) GetGroupAnalytics(ctx context.Context, req *connect.Request[api.GetGroupAnalyticsRequest]) (*connect.Response[api.GetGroupAnalyticsResponse], error) {
	if err := s.group(req.Msg, req.Msg.GroupID); err != nil {
		return nil, err
	}
	g := s.views.Group(ctx, req.Msg.GroupID)
	return connect.NewResponse(&api.GetGroupAnalyticsResponse{Analytics: toAPIGroupAnalytics(g)}), nil
}

func (s *AnalyticsService) GetForecast(ctx context.Context, req *connect.Request[api.GetForecastRequest]) (*connect.Response[api.GetForecastResponse], error) {
	f := insight.PredictNextMonth(s.ledger.Expenses(), subject(ctx, req.Msg.UserID))
	return connect.NewResponse(&api.GetForecastResponse{Forecast: toAPIForecast(f)}), nil
}

func (s *AnalyticsService) GetAnomalies(ctx context.Context, req *connect.Request[api.GetAnomaliesRequest]) (*connect.Response[api.GetAnomaliesResponse], error) {
	found := insight.DetectAnomalies(s.ledger.Expenses(), subject(ctx, req.Msg.UserID))
	return connect.NewResponse(&api.GetAnomaliesResponse{Anomalies: toAPIAnomalies(found)}), nil
}

func (s *AnalyticsService) GetPersonality(ctx context.Context, req *connect.Request[api.GetPersonalityRequest]) (*connect.Response[api.GetPersonalityResponse], error) {
	p := insight.ClassifyPersonality(s.views.User(ctx, subject(ctx, req.Msg.UserID)))
	return connect.NewResponse(&api.GetPersonalityResponse{
		Personality: api.Personality{Type: p.Type, Icon: p.Icon, Description: p.Description},
	}), nil
}

func (s *AnalyticsService) GetGroupHealth(ctx context.Context, req *connect.Request[api.GetGroupHealthRequest]) (*connect.Response[api.GetGroupHealthResponse], error) {
	if err := s.group(req.Msg, req.Msg.GroupID); err != nil {
		return nil, err
	}
	group, _ := s.ledger.Group(req.Msg.GroupID)
	h := insight.GroupHealth(s.views.Group(ctx, group.ID))
	return connect.NewResponse(&api.GetGroupHealthResponse{
		GroupName: group.Name,
		Health:    api.Health{Score: h.Score, Status: h.Status, Color: h.Color},
	}), nil
}

func (s *AnalyticsService) GetSettlementAdvice(ctx context.Context, req *connect.Request[api.GetSettlementAdviceRequest]) (*connect.Response[api.GetSettlementAdviceResponse], error) {
	advice := insight.SuggestSettlement(s.views.User(ctx, subject(ctx, req.Msg.UserID)))
	out := api.SettlementAdvice{Owed: advice.Owed, To: advice.To, Amount: advice.Amount}
	if advice.To != "" {
		out.ToName = s.ledger.UserName(advice.To)
	}
	return connect.NewResponse(&api.GetSettlementAdviceResponse{Advice: out}), nil
}

func (s *AnalyticsService) GetSmartTip(ctx context.Context, req *connect.Request[api.GetSmartTipRequest]) (*connect.Response[api.GetSmartTipResponse], error) {
	tip := insight.SmartTip(s.views.User(ctx, subject(ctx, req.Msg.UserID)))
	return connect.NewResponse(&api.GetSmartTipResponse{
		Tip: api.Tip{Category: tip.Category, Text: tip.Text, InsufficientData: tip.InsufficientData},
	}), nil
}
