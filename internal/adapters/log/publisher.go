package log

import (
	"context"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// Publisher is the transport used when no broker is configured.
// It hands every message to the logger at debug level and drops it.
type Publisher struct {
	logger ports.Logger
}

// NewPublisher creates a logging-only publisher.
func NewPublisher(logger ports.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// PublishChatter logs the message. It never fails.
func (p *Publisher) PublishChatter(_ context.Context, msg domain.ChatterMessage) error {
	p.logger.Debug("chatter",
		ports.Uint64("sequence", msg.Sequence),
		ports.String("data", msg.Data()),
	)
	return nil
}

// PublishTransform logs the sample. It never fails.
func (p *Publisher) PublishTransform(_ context.Context, sample domain.TransformSample) error {
	p.logger.Debug("transform",
		ports.String("parent", sample.ParentFrame),
		ports.String("child", sample.ChildFrame),
		ports.Any("translation", sample.Translation),
		ports.Any("rotation", sample.Rotation),
	)
	return nil
}

var (
	_ ports.ChatterPublisher   = (*Publisher)(nil)
	_ ports.TransformPublisher = (*Publisher)(nil)
)
