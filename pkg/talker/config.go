package talker

import (
	"fmt"
	"time"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// DefaultFrequency is the publish rate used when Config.Frequency is not positive.
const DefaultFrequency = domain.DefaultFrequency

// DefaultMessage is the text published until the first modification.
const DefaultMessage = domain.DefaultMessage

// Config holds the configuration for a Node.
type Config struct {
	// NodeName identifies the node in published envelopes and logs.
	// Default: "talker"
	NodeName string

	// Frequency is the requested publish rate in Hz. Zero and negative values
	// fall back to DefaultFrequency at Start.
	Frequency int

	// Message is the initial message. Nil means DefaultMessage; a pointer
	// to "" publishes the empty string.
	Message *string

	// ChatterQueueSize bounds pending chatter messages. Default: 1000
	ChatterQueueSize int

	// TransformQueueSize bounds pending transform samples. Default: 100
	TransformQueueSize int

	// ShutdownTimeout bounds how long Stop waits for the publish loop.
	// Default: 30 seconds
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero-valued fields. Frequency is left untouched.
func (c *Config) SetDefaults() {
	if c.NodeName == "" {
		c.NodeName = "talker"
	}
	if c.Message == nil {
		msg := DefaultMessage
		c.Message = &msg
	}
	if c.ChatterQueueSize == 0 {
		c.ChatterQueueSize = 1000
	}
	if c.TransformQueueSize == 0 {
		c.TransformQueueSize = 100
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
}

// Validate checks the configuration. Call SetDefaults first.
func (c *Config) Validate() error {
	if c.NodeName == "" {
		return fmt.Errorf("%w: node name is required", domain.ErrInvalidConfig)
	}
	if c.ChatterQueueSize < 0 {
		return fmt.Errorf("%w: chatter queue size must be positive", domain.ErrInvalidConfig)
	}
	if c.TransformQueueSize < 0 {
		return fmt.Errorf("%w: transform queue size must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
