package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxRemoteReply bounds how much of a remote response is read.
const maxRemoteReply = 1 << 20

// HTTPRemote posts questions as JSON to a language-model gateway and expects
// a Reply-shaped JSON body back. A 204 response means "no answer".
type HTTPRemote struct {
	url    string
	client *http.Client
}

// NewHTTPRemote creates a Remote for url. A nil client uses http.DefaultClient.
func NewHTTPRemote(url string, client *http.Client) *HTTPRemote {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRemote{url: url, client: client}
}

type remoteRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (r *HTTPRemote) Ask(ctx context.Context, userID, text string) (*Reply, error) {
	body, err := json.Marshal(remoteRequest{UserID: userID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode remote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build remote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote returned %s", resp.Status)
	}

	var reply Reply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRemoteReply)).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode remote reply: %w", err)
	}
	return &reply, nil
}
