package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Feed is the change-feed bridge between the data layer and subscribers.
// Mutating services publish a ChangeEvent after every successful write;
// watchers subscribe per table. The feed provides no ordering, dedup, or
// replay beyond what Redis Pub/Sub delivers (at-most-once).
// The feed is safe for concurrent use.
type Feed struct {
	rdb *redis.Client
}

// NewFeed creates a change feed backed by the given Redis options.
func NewFeed(redisOpts *redis.Options) *Feed {
	return &Feed{rdb: redis.NewClient(redisOpts)}
}

// Close closes the Redis connection. Implements io.Closer.
func (f *Feed) Close() error {
	return f.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks at startup.
func (f *Feed) Ping(ctx context.Context) error {
	return f.rdb.Ping(ctx).Err()
}

// Publish validates and publishes a change event to the table's channel.
func (f *Feed) Publish(ctx context.Context, event ChangeEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid change event: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	if err := f.rdb.Publish(ctx, eventsChannel(event.Table), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	return nil
}

// Subscription represents an active subscription to a table's change events.
// Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *ChangeEvent
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of change events.
// The channel is closed when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *ChangeEvent {
	return s.events
}

// Errors returns the channel of subscription errors.
// Errors include JSON unmarshaling failures; the subscription continues
// after errors and the offending message is skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements io.Closer.
// Safe to call multiple times. No events are delivered after Close returns
// and the events channel is drained.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe opens a change-event subscription for the given table.
// Events are delivered on a buffered channel (size 10); a slow subscriber
// can lose messages at the Redis layer, never see them out of order.
// Caller must call subscription.Close() when done. Context cancellation
// also stops the subscription.
func (f *Feed) Subscribe(ctx context.Context, table string) (*Subscription, error) {
	if table == "" {
		return nil, fmt.Errorf("table cannot be empty")
	}

	pubsub := f.rdb.Subscribe(ctx, eventsChannel(table))

	eventsChan := make(chan *ChangeEvent, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to unmarshal change event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &event:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
