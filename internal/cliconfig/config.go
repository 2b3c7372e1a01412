package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// Defaults for values not covered by the domain package.
const (
	DefaultNodeName           = "talker"
	DefaultServiceAddr        = "127.0.0.1:8080"
	DefaultChatterQueueSize   = 1000
	DefaultTransformQueueSize = 100
	DefaultLogLevel           = "info"
	DefaultShutdownTimeout    = 30 * time.Second
)

// Config holds CLI configuration for the talker node.
type Config struct {
	NodeName  string
	Frequency int
	Message   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string

	ChatterTopic       string
	TransformTopic     string
	ChatterQueueSize   int
	TransformQueueSize int

	ServiceAddr string
	MessageFile string

	LogLevel        string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
// RedisAddr is empty, so messages are only logged until one is configured.
func DefaultConfig() Config {
	return Config{
		NodeName:           DefaultNodeName,
		Frequency:          domain.DefaultFrequency,
		Message:            domain.DefaultMessage,
		ChatterTopic:       domain.ChatterTopic,
		TransformTopic:     domain.TransformTopic,
		ChatterQueueSize:   DefaultChatterQueueSize,
		TransformQueueSize: DefaultTransformQueueSize,
		ServiceAddr:        DefaultServiceAddr,
		LogLevel:           DefaultLogLevel,
		ShutdownTimeout:    DefaultShutdownTimeout,
	}
}

// Validate checks the configuration for errors.
// Frequency is not checked; out-of-range rates fall back to the default when
// the node starts.
func (c *Config) Validate() error {
	if c.NodeName == "" {
		return fmt.Errorf("node-name is required")
	}
	if c.ChatterTopic == "" {
		return fmt.Errorf("chatter-topic is required")
	}
	if c.TransformTopic == "" {
		return fmt.Errorf("tf-topic is required")
	}
	if c.ChatterTopic == c.TransformTopic {
		return fmt.Errorf("chatter-topic and tf-topic must differ")
	}
	if c.ChatterQueueSize <= 0 {
		return fmt.Errorf("chatter-queue must be positive")
	}
	if c.TransformQueueSize <= 0 {
		return fmt.Errorf("tf-queue must be positive")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("redis-db must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown-timeout must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	return nil
}

// ApplyArgs applies the optional positional frequency argument. It is parsed
// leniently, so "abc" becomes 0 and later falls back to the default rate.
func ApplyArgs(cfg *Config, args []string) {
	if len(args) == 0 {
		return
	}
	cfg.Frequency = domain.ParseFrequency(args[0])
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStringPtr sets any string value, including the empty string, when present.
func (s *configSetter) setStringPtr(flag string, value *string, dst *string) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntPtr sets any int value, including zero and negatives, when present.
func (s *configSetter) setIntPtr(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if positive.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setSignedIntFromString is setIntFromString without the positivity filter.
func (s *configSetter) setSignedIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}
