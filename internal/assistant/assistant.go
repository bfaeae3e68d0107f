package assistant

import (
	"context"
	"log/slog"
	"time"
)

// Remote is an external language-model service that may answer a question.
// A nil Reply with a nil error means it had nothing to say.
type Remote interface {
	Ask(ctx context.Context, userID, text string) (*Reply, error)
}

// Assistant asks the remote first and falls back to the local Interpreter.
// The remote call gets its own timeout and is never retried.
type Assistant struct {
	remote  Remote
	local   *Interpreter
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Assistant. A nil remote means every question is answered locally.
func New(remote Remote, local *Interpreter, timeout time.Duration, logger *slog.Logger) *Assistant {
	return &Assistant{remote: remote, local: local, timeout: timeout, logger: logger}
}

// Ask answers text for userID. Only a failure to commit a record created by
// the local interpreter is returned as an error.
func (a *Assistant) Ask(ctx context.Context, userID, text string) (Reply, error) {
	if reply, ok := a.askRemote(ctx, userID, text); ok {
		return reply, nil
	}
	return a.local.Interpret(ctx, userID, text)
}

func (a *Assistant) askRemote(ctx context.Context, userID, text string) (Reply, bool) {
	if a.remote == nil {
		return Reply{}, false
	}

	remoteCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	reply, err := a.remote.Ask(remoteCtx, userID, text)
	switch {
	case err != nil:
		a.logger.Warn("Remote assistant failed, answering locally",
			"user_id", userID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return Reply{}, false
	case reply == nil || reply.Text == "":
		a.logger.Debug("Remote assistant had no answer, answering locally", "user_id", userID)
		return Reply{}, false
	}

	out := *reply
	out.Source = SourceRemote
	if out.Kind == "" {
		out.Kind = KindText
	}
	return out, true
}
