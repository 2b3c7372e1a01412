package app

import (
	"context"
	"time"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// TransformBroadcaster announces the fixed world -> talk transform.
type TransformBroadcaster struct {
	publisher ports.TransformPublisher
	logger    ports.Logger
	observer  PublishErrorObserver
}

// NewTransformBroadcaster creates a broadcaster. observer may be nil.
func NewTransformBroadcaster(publisher ports.TransformPublisher, logger ports.Logger, observer PublishErrorObserver) *TransformBroadcaster {
	return &TransformBroadcaster{
		publisher: publisher,
		logger:    logger,
		observer:  observer,
	}
}

// Broadcast emits the transform stamped at stamp and returns the sample.
// Transport failures are logged and reported to the observer only.
func (b *TransformBroadcaster) Broadcast(ctx context.Context, stamp time.Time) domain.TransformSample {
	sample := domain.TalkTransform(stamp)

	if err := b.publisher.PublishTransform(ctx, sample); err != nil {
		b.logger.Warn("transform publish failed",
			ports.String("parent", sample.ParentFrame),
			ports.String("child", sample.ChildFrame),
			ports.Err(err),
		)
		if b.observer != nil {
			b.observer.OnPublishError(domain.TransformTopic, err)
		}
	}

	return sample
}
