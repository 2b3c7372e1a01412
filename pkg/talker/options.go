package talker

import (
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Re-exported message types.
type (
	ChatterMessage  = domain.ChatterMessage
	TransformSample = domain.TransformSample
	ModifyRequest   = domain.ModifyRequest
	ModifyResponse  = domain.ModifyResponse
)

// ChatterPublisher delivers chatter messages to a transport.
type ChatterPublisher = ports.ChatterPublisher

// TransformPublisher delivers transform samples to a transport.
type TransformPublisher = ports.TransformPublisher

// Publisher delivers both chatter and transforms.
type Publisher interface {
	ChatterPublisher
	TransformPublisher
}

// Option configures optional behavior of a Node.
type Option func(*options)

// options holds the optional configuration for a Node.
type options struct {
	logger       ports.Logger
	chatter      ports.ChatterPublisher
	transforms   ports.TransformPublisher
	clock        clockwork.Clock
	registerer   prometheus.Registerer
	eventHandler EventHandler
	plugins      []Plugin
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		clock: clockwork.NewRealClock(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithChatterPublisher sets the transport for chatter messages.
func WithChatterPublisher(p ChatterPublisher) Option {
	return func(o *options) {
		o.chatter = p
	}
}

// WithTransformPublisher sets the transport for transform samples.
func WithTransformPublisher(p TransformPublisher) Option {
	return func(o *options) {
		o.transforms = p
	}
}

// WithPublisher sets one transport for both chatter and transforms.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.chatter = p
		o.transforms = p
	}
}

// WithClock sets the clock driving the publish loop. Tests pass a
// clockwork.FakeClock to step ticks by hand.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRegisterer registers the node's Prometheus collectors with reg.
// If not provided, collectors are kept but not registered anywhere.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithEventHandler sets a handler for node events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the node starts.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
