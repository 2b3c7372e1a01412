package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// subscriptionBuffer is the capacity of the events and errors channels.
const subscriptionBuffer = 64

// Subscription is an active Pub/Sub subscription delivering decoded
// envelopes. Caller must call Close when done.
type Subscription[T any] struct {
	channel string
	events  <-chan T
	errors  <-chan error
	cancel  func()
	done    <-chan struct{}
	once    sync.Once
}

// Channel returns the subscribed channel name.
func (s *Subscription[T]) Channel() string {
	return s.channel
}

// Events returns the channel of decoded envelopes. It is closed when the
// subscription ends.
func (s *Subscription[T]) Events() <-chan T {
	return s.events
}

// Errors returns decoding failures. Undecodable messages are skipped.
func (s *Subscription[T]) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and waits for its goroutine.
// Safe to call multiple times.
func (s *Subscription[T]) Close() error {
	s.once.Do(s.cancel)
	<-s.done
	return nil
}

// SubscribeChatter subscribes to chatter envelopes on topic.
func (c *Client) SubscribeChatter(ctx context.Context, topic string) (*Subscription[ChatterEnvelope], error) {
	return subscribe[ChatterEnvelope](ctx, c, topic)
}

// SubscribeTransforms subscribes to transform envelopes on topic.
func (c *Client) SubscribeTransforms(ctx context.Context, topic string) (*Subscription[TransformEnvelope], error) {
	return subscribe[TransformEnvelope](ctx, c, topic)
}

// subscribe returns once Redis confirmed the subscription, so messages
// published afterwards are delivered.
func subscribe[T any](ctx context.Context, c *Client, topic string) (*Subscription[T], error) {
	channel := c.Channel(topic)
	pubsub := c.rdb.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	events := make(chan T, subscriptionBuffer)
	errs := make(chan error, subscriptionBuffer)
	done := make(chan struct{})
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(done)
		defer close(events)
		defer close(errs)
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

				var v T
				if err := json.Unmarshal([]byte(msg.Payload), &v); err != nil {
					select {
					case errs <- fmt.Errorf("failed to decode message on %s: %w", msg.Channel, err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case events <- v:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription[T]{
		channel: channel,
		events:  events,
		errors:  errs,
		cancel:  cancel,
		done:    done,
	}, nil
}
