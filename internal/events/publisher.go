package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// publishTimeout bounds a single XADD; events are fire-and-forget after
// commit, so a slow Redis must not hold the request open.
const publishTimeout = 2 * time.Second

// Publisher appends domain events to Redis streams. Publishing happens after
// the owning database transaction has committed; it never participates in it.
// Streams are trimmed approximately at maxLen so unconsumed streams cannot
// grow without bound.
type Publisher struct {
	client *redis.Client
	maxLen int64
}

func NewPublisher(client *redis.Client, maxLen int64) *Publisher {
	return &Publisher{client: client, maxLen: maxLen}
}

func (p *Publisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: map[string]any{
			"type":      eventType,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"payload":   payload,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
