package queue

import (
	"context"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// ChatterPublisher queues chatter messages in front of another publisher.
type ChatterPublisher struct {
	*Queue[domain.ChatterMessage]
}

// NewChatterPublisher wraps next with a queue of the given depth.
func NewChatterPublisher(topic string, next ports.ChatterPublisher, depth int, hooks Hooks) *ChatterPublisher {
	return &ChatterPublisher{
		Queue: New[domain.ChatterMessage](topic, depth, next.PublishChatter, hooks),
	}
}

// PublishChatter enqueues msg. Delivery errors surface through Hooks.OnError.
func (p *ChatterPublisher) PublishChatter(_ context.Context, msg domain.ChatterMessage) error {
	return p.Push(msg)
}

// TransformPublisher queues transform samples in front of another publisher.
type TransformPublisher struct {
	*Queue[domain.TransformSample]
}

// NewTransformPublisher wraps next with a queue of the given depth.
func NewTransformPublisher(topic string, next ports.TransformPublisher, depth int, hooks Hooks) *TransformPublisher {
	return &TransformPublisher{
		Queue: New[domain.TransformSample](topic, depth, next.PublishTransform, hooks),
	}
}

// PublishTransform enqueues sample. Delivery errors surface through Hooks.OnError.
func (p *TransformPublisher) PublishTransform(_ context.Context, sample domain.TransformSample) error {
	return p.Push(sample)
}
