package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// Phase is the state of the publish loop.
type Phase int32

const (
	PhaseInitializing Phase = iota
	PhaseRunning
	PhaseStopped
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// TalkerConfig contains configuration for the publish loop.
type TalkerConfig struct {
	// RequestedFrequency is the raw publish rate in Hz. Non-positive values
	// are replaced by domain.DefaultFrequency.
	RequestedFrequency int
}

// Talker drives the periodic publish loop. Every tick it snapshots the
// current message, publishes it with the next sequence number, then
// broadcasts the transform.
type Talker struct {
	config     TalkerConfig
	messages   ports.MessageStore
	chatter    ports.ChatterPublisher
	transforms *TransformBroadcaster
	clock      clockwork.Clock
	logger     ports.Logger
	observer   TickObserver

	started   atomic.Bool
	phase     atomic.Int32
	sequence  atomic.Uint64
	effective atomic.Int64
}

// NewTalker creates a publish loop. observer may be nil.
func NewTalker(
	config TalkerConfig,
	messages ports.MessageStore,
	chatter ports.ChatterPublisher,
	transforms *TransformBroadcaster,
	clock clockwork.Clock,
	logger ports.Logger,
	observer TickObserver,
) *Talker {
	return &Talker{
		config:     config,
		messages:   messages,
		chatter:    chatter,
		transforms: transforms,
		clock:      clock,
		logger:     logger,
		observer:   observer,
	}
}

// Phase returns the current loop phase.
func (t *Talker) Phase() Phase {
	return Phase(t.phase.Load())
}

// Sequence returns the number of completed ticks, which is also the
// sequence number the next message will carry.
func (t *Talker) Sequence() uint64 {
	return t.sequence.Load()
}

// EffectiveFrequency returns the validated rate, or 0 before Run resolved it.
func (t *Talker) EffectiveFrequency() int {
	return int(t.effective.Load())
}

// Run resolves the frequency and ticks until ctx is canceled.
// Cancellation is observed between ticks, so Run returns within one period.
// A Talker runs once; a second call returns ErrLoopStopped.
func (t *Talker) Run(ctx context.Context) error {
	if t.started.Swap(true) {
		return domain.ErrLoopStopped
	}

	res := domain.ResolveFrequency(t.config.RequestedFrequency)
	for _, n := range res.Notices {
		t.notify(n, res)
	}
	t.effective.Store(int64(res.Effective))
	if t.observer != nil {
		t.observer.OnFrequencyResolved(res)
	}

	// The ticker keeps a fixed schedule, so slow ticks do not accumulate drift.
	ticker := t.clock.NewTicker(res.Period())
	defer ticker.Stop()

	if ctx.Err() != nil {
		t.stop()
		return nil
	}
	t.phase.Store(int32(PhaseRunning))

	var seq uint64
	for {
		msg, stamp := t.tick(ctx, seq)
		seq++
		t.sequence.Store(seq)
		if t.observer != nil {
			t.observer.OnTick(msg, stamp)
		}

		// Shutdown wins over a tick that is already due.
		if ctx.Err() != nil {
			t.stop()
			return nil
		}
		select {
		case <-ctx.Done():
			t.stop()
			return nil
		case <-ticker.Chan():
		}
		if ctx.Err() != nil {
			t.stop()
			return nil
		}
	}
}

func (t *Talker) tick(ctx context.Context, seq uint64) (domain.ChatterMessage, time.Time) {
	msg := domain.ChatterMessage{Sequence: seq, Text: t.messages.Read()}

	t.logger.Info(msg.Data(), ports.Uint64("sequence", seq))

	if err := t.chatter.PublishChatter(ctx, msg); err != nil {
		t.logger.Warn("chatter publish failed",
			ports.Uint64("sequence", seq),
			ports.Err(err),
		)
		if t.observer != nil {
			t.observer.OnPublishError(domain.ChatterTopic, err)
		}
	}

	stamp := t.clock.Now()
	t.transforms.Broadcast(ctx, stamp)

	return msg, stamp
}

func (t *Talker) stop() {
	t.phase.Store(int32(PhaseStopped))
	t.logger.Info("publish loop stopped", ports.Uint64("ticks", t.sequence.Load()))
}

func (t *Talker) notify(n domain.Notice, res domain.FrequencyResolution) {
	fields := []ports.Field{
		ports.Int("requested", res.Requested),
		ports.Int("effective", res.Effective),
	}
	switch n.Level {
	case domain.NoticeDebug:
		t.logger.Debug(n.Message, fields...)
	case domain.NoticeInfo:
		t.logger.Info(n.Message, fields...)
	case domain.NoticeWarn:
		t.logger.Warn(n.Message, fields...)
	case domain.NoticeError:
		t.logger.Error(n.Message, fields...)
	case domain.NoticeCritical:
		t.logger.Critical(n.Message, fields...)
	}
}
