package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// Publisher implements ports.ChatterPublisher and ports.TransformPublisher
// with PUBLISH.
type Publisher struct {
	client         *Client
	chatterTopic   string
	transformTopic string
}

// NewPublisher creates a publisher writing to the given topics.
func NewPublisher(client *Client, chatterTopic, transformTopic string) *Publisher {
	return &Publisher{
		client:         client,
		chatterTopic:   chatterTopic,
		transformTopic: transformTopic,
	}
}

// PublishChatter publishes msg as a ChatterEnvelope.
func (p *Publisher) PublishChatter(ctx context.Context, msg domain.ChatterMessage) error {
	return p.publish(ctx, p.chatterTopic, NewChatterEnvelope(p.client.node, msg))
}

// PublishTransform publishes s as a TransformEnvelope.
func (p *Publisher) PublishTransform(ctx context.Context, s domain.TransformSample) error {
	return p.publish(ctx, p.transformTopic, NewTransformEnvelope(p.client.node, s))
}

func (p *Publisher) publish(ctx context.Context, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", topic, err)
	}

	channel := p.client.Channel(topic)
	if err := p.client.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}
