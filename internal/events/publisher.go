package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Publisher = (*RedisPublisher)(nil)

// RedisPublisher appends events to a Redis stream with XADD.
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	now    func() time.Time
}

// NewRedisPublisher publishes to LedgerStream, trimming it to roughly maxLen
// entries. A maxLen of 0 disables trimming.
func NewRedisPublisher(client *redis.Client, maxLen int64) *RedisPublisher {
	return &RedisPublisher{client: client, stream: LedgerStream, maxLen: maxLen, now: time.Now}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, version uint64, data any) error {
	args, err := p.args(eventType, version, data)
	if err != nil {
		return err
	}
	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *RedisPublisher) args(eventType string, version uint64, data any) (*redis.XAddArgs, error) {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Version:   version,
		Timestamp: p.now().UTC(),
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	return &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]any{
			"type":  eventType,
			"event": payload,
		},
	}, nil
}
