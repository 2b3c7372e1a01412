package talker

import (
	"time"

	"github.com/nivir/beginner-tutorials/internal/app"
)

// State is the lifecycle state of a Node.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// FrequencyEvent is emitted once per Start, after the rate was validated.
type FrequencyEvent struct {
	Requested int
	Effective int
	// Fallback is true when Requested was replaced by DefaultFrequency.
	Fallback bool
}

// TickEvent is emitted after every completed tick.
type TickEvent struct {
	Sequence uint64
	Text     string
	Data     string
	Stamp    time.Time
}

// MessageChangedEvent is emitted after the message was replaced.
type MessageChangedEvent struct {
	Text string
}

// PublishErrorEvent is emitted when a transport fails or a queue drops
// a message. Dropped is set for the latter.
type PublishErrorEvent struct {
	Topic   string
	Error   error
	Dropped bool
}

// EventHandler receives node events. Embed BaseEventHandler to implement
// only the methods you need.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnFrequencyResolved(event FrequencyEvent)
	OnTick(event TickEvent)
	OnMessageChanged(event MessageChangedEvent)
	OnPublishError(event PublishErrorEvent)
}

// BaseEventHandler implements EventHandler with no-ops.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)       {}
func (BaseEventHandler) OnFrequencyResolved(FrequencyEvent)   {}
func (BaseEventHandler) OnTick(TickEvent)                     {}
func (BaseEventHandler) OnMessageChanged(MessageChangedEvent) {}
func (BaseEventHandler) OnPublishError(PublishErrorEvent)     {}
