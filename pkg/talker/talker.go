package talker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	logAdapter "github.com/nivir/beginner-tutorials/internal/adapters/log"
	"github.com/nivir/beginner-tutorials/internal/adapters/queue"
	"github.com/nivir/beginner-tutorials/internal/app"
	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/metrics"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// Node is a talker node that can be embedded in other applications.
// Use New() to create an instance, then Start() to begin publishing.
type Node struct {
	config    Config
	opts      options
	id        string
	logger    ports.Logger
	lifecycle *app.Lifecycle
	emitter   *eventEmitterWrapper
	messages  *domain.MessageState
	mutation  *app.MutationService
	plugins   []Plugin

	mu             sync.RWMutex
	talker         *app.Talker
	chatterQueue   *queue.ChatterPublisher
	transformQueue *queue.TransformPublisher
	cancel         context.CancelFunc
}

// New creates a Node with the given configuration.
// The instance is created in StateStopped; call Start() to begin publishing.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Node, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}
	if o.chatter == nil || o.transforms == nil {
		fallback := logAdapter.NewPublisher(logger)
		if o.chatter == nil {
			o.chatter = fallback
		}
		if o.transforms == nil {
			o.transforms = fallback
		}
	}

	emitter := &eventEmitterWrapper{
		handler: o.eventHandler,
		metrics: metrics.New(o.registerer),
	}
	messages := domain.NewMessageState(*cfg.Message)

	return &Node{
		config:    cfg,
		opts:      o,
		id:        uuid.NewString(),
		logger:    logger,
		lifecycle: app.NewLifecycle(logger, emitter, o.clock),
		emitter:   emitter,
		messages:  messages,
		mutation:  app.NewMutationService(messages, logger, emitter),
		plugins:   o.plugins,
	}, nil
}

// Start begins publishing in the background.
// Returns immediately after starting the publish goroutine.
// Returns an error if already running or if a plugin fails to initialize.
// The provided context is used for the lifetime of the publish loop.
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := n.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.lifecycle.SetCancel(cancel)

	hooks := queue.Hooks{
		OnDrop:  n.emitter.OnQueueDrop,
		OnError: n.onTransportError,
	}
	n.chatterQueue = queue.NewChatterPublisher(domain.ChatterTopic, n.opts.chatter, n.config.ChatterQueueSize, hooks)
	n.transformQueue = queue.NewTransformPublisher(domain.TransformTopic, n.opts.transforms, n.config.TransformQueueSize, hooks)
	n.chatterQueue.Start(runCtx)
	n.transformQueue.Start(runCtx)

	broadcaster := app.NewTransformBroadcaster(n.transformQueue, n.logger, n.emitter)
	n.talker = app.NewTalker(
		app.TalkerConfig{RequestedFrequency: n.config.Frequency},
		n.messages,
		n.chatterQueue,
		broadcaster,
		n.opts.clock,
		n.logger,
		n.emitter,
	)

	pluginCfg := PluginConfig{
		NodeName: n.config.NodeName,
		NodeID:   n.id,
		Logger:   n.logger,
		Messages: n,
	}
	for i, p := range n.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			n.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			n.shutdownPlugins(n.plugins[:i])
			n.closeQueues()
			_ = n.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		n.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	talker := n.talker
	n.lifecycle.Go(func() {
		if err := n.lifecycle.TransitionTo(app.StateRunning, "publish loop starting"); err != nil {
			n.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		if err := talker.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			n.logger.Error("publish loop error", ports.Err(err))
			_ = n.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	})

	n.logger.Info("talker node started",
		ports.String("node", n.config.NodeName),
		ports.String("id", n.id),
	)
	return nil
}

// Stop gracefully shuts down the node.
// Pending queued messages are flushed to the transports.
// Waits up to Config.ShutdownTimeout before forcing shutdown.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (n *Node) Stop() error {
	n.mu.Lock()

	if !n.lifecycle.CanStop() {
		n.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := n.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		n.mu.Unlock()
		return err
	}

	if n.cancel != nil {
		n.cancel()
	}

	n.mu.Unlock()

	err := n.lifecycle.WaitWithTimeout(n.config.ShutdownTimeout)

	n.shutdownPlugins(n.plugins)

	n.mu.Lock()
	n.closeQueues()
	n.mu.Unlock()

	if err != nil {
		_ = n.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = n.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (n *Node) Status() State {
	return convertState(n.lifecycle.State())
}

// Modify replaces the message published from the next tick on and echoes
// the input. It works in every lifecycle state.
func (n *Node) Modify(ctx context.Context, req ModifyRequest) ModifyResponse {
	return n.mutation.Modify(ctx, req)
}

// Message returns the text the next tick will publish.
func (n *Node) Message() string {
	return n.messages.Read()
}

// ID returns the random instance id assigned by New.
func (n *Node) ID() string {
	return n.id
}

// Name returns the configured node name.
func (n *Node) Name() string {
	return n.config.NodeName
}

// Sequence returns the number of ticks completed since the last Start.
func (n *Node) Sequence() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.talker == nil {
		return 0
	}
	return n.talker.Sequence()
}

// EffectiveFrequency returns the validated publish rate, or 0 before the
// first tick.
func (n *Node) EffectiveFrequency() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.talker == nil {
		return 0
	}
	return n.talker.EffectiveFrequency()
}

func (n *Node) onTransportError(topic string, err error) {
	n.logger.Warn("transport publish failed",
		ports.String("topic", topic),
		ports.Err(err),
	)
	n.emitter.OnPublishError(topic, err)
}

func (n *Node) shutdownPlugins(plugins []Plugin) {
	ctx, cancel := context.WithTimeout(context.Background(), n.config.ShutdownTimeout)
	defer cancel()

	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			n.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
		} else {
			n.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}
}

// closeQueues flushes and closes the publish queues. Caller holds n.mu.
func (n *Node) closeQueues() {
	if n.chatterQueue != nil {
		n.chatterQueue.Close()
	}
	if n.transformQueue != nil {
		n.transformQueue.Close()
	}
}

// eventEmitterWrapper fans internal notifications out to metrics and the
// optional EventHandler.
type eventEmitterWrapper struct {
	handler EventHandler
	metrics *metrics.Metrics
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnFrequencyResolved(res domain.FrequencyResolution) {
	e.metrics.EffectiveFrequency.Set(float64(res.Effective))
	if e.handler == nil {
		return
	}
	e.handler.OnFrequencyResolved(FrequencyEvent{
		Requested: res.Requested,
		Effective: res.Effective,
		Fallback:  res.Class != domain.FrequencyNominal,
	})
}

func (e *eventEmitterWrapper) OnTick(msg domain.ChatterMessage, stamp time.Time) {
	e.metrics.TicksTotal.Inc()
	e.metrics.Sequence.Set(float64(msg.Sequence))
	if e.handler == nil {
		return
	}
	e.handler.OnTick(TickEvent{
		Sequence: msg.Sequence,
		Text:     msg.Text,
		Data:     msg.Data(),
		Stamp:    stamp,
	})
}

func (e *eventEmitterWrapper) OnMessageChanged(text string) {
	e.metrics.MutationsTotal.Inc()
	if e.handler == nil {
		return
	}
	e.handler.OnMessageChanged(MessageChangedEvent{Text: text})
}

func (e *eventEmitterWrapper) OnPublishError(topic string, err error) {
	e.metrics.PublishErrors.WithLabelValues(topic).Inc()
	if e.handler == nil {
		return
	}
	e.handler.OnPublishError(PublishErrorEvent{Topic: topic, Error: err})
}

func (e *eventEmitterWrapper) OnQueueDrop(topic string) {
	e.metrics.QueueDropped.WithLabelValues(topic).Inc()
	if e.handler == nil {
		return
	}
	e.handler.OnPublishError(PublishErrorEvent{Topic: topic, Dropped: true})
}
