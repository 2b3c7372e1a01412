package app

import (
	"time"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// PublishErrorObserver is told about transport failures on a topic.
type PublishErrorObserver interface {
	OnPublishError(topic string, err error)
}

// TickObserver is notified by the publish loop.
// Calls happen synchronously on the loop goroutine and must return quickly.
type TickObserver interface {
	PublishErrorObserver

	// OnFrequencyResolved is called once, before the first tick.
	OnFrequencyResolved(res domain.FrequencyResolution)

	// OnTick is called after every completed tick.
	OnTick(msg domain.ChatterMessage, stamp time.Time)
}

// MutationObserver is notified after the current message was replaced.
type MutationObserver interface {
	OnMessageChanged(text string)
}
