package ports

import (
	"context"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// ChatterPublisher emits chatter messages to subscribers.
// Delivery and queueing guarantees belong to the implementation.
type ChatterPublisher interface {
	// PublishChatter emits one message. An error reports a transport
	// failure; the caller does not retry.
	PublishChatter(ctx context.Context, msg domain.ChatterMessage) error
}

// TransformPublisher broadcasts stamped transforms between frames.
type TransformPublisher interface {
	// PublishTransform emits one transform sample.
	PublishTransform(ctx context.Context, sample domain.TransformSample) error
}
