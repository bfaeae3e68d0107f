package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitsense/internal/assistant"
	"github.com/mmynk/splitsense/internal/middleware"
	"github.com/mmynk/splitsense/pkg/api"
)

var _ api.AssistantServiceHandler = (*AssistantService)(nil)

// AssistantService answers free-text questions for the caller.
type AssistantService struct {
	assistant *assistant.Assistant
}

func NewAssistantService(a *assistant.Assistant) *AssistantService {
	return &AssistantService{assistant: a}
}

func (s *AssistantService) Ask(ctx context.Context, req *connect.Request[api.AskRequest]) (*connect.Response[api.AskResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	userID := middleware.GetUserID(ctx)
	reply, err := s.assistant.Ask(ctx, userID, req.Msg.Text)
	if err != nil {
		slog.Error("Ask failed", "user_id", userID, "error", err)
		return nil, connectError(err)
	}

	slog.Debug("Ask answered", "user_id", userID, "kind", reply.Kind, "source", reply.Source)
	return connect.NewResponse(&api.AskResponse{
		Text:   reply.Text,
		Kind:   reply.Kind,
		Data:   reply.Data,
		Source: reply.Source,
	}), nil
}
