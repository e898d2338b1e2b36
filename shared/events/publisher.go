package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnknownEventType is returned for event types with no ledger stream.
var ErrUnknownEventType = errors.New("unknown event type")

// streamMaxLen caps each stream; trimming is approximate.
const streamMaxLen = 100_000

// Publisher appends ledger events to the stream that owns their type.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	stream, ok := StreamFor(eventType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	eventJSON, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	// "type" is duplicated outside the payload so consumers can filter
	// without decoding.
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{
			"type":  eventType,
			"event": eventJSON,
		},
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", eventType, stream, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, eventType string, _ any) error {
	if _, ok := StreamFor(eventType); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
	return nil
}
