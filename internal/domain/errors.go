package domain

import "errors"

// Domain errors represent error conditions in the talker domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running node.
	ErrAlreadyRunning = errors.New("talker: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped node.
	ErrNotRunning = errors.New("talker: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("talker: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("talker: invalid configuration")

	// ErrLoopStopped is returned when a publish loop that already stopped is run again.
	ErrLoopStopped = errors.New("talker: publish loop stopped")

	// ErrQueueClosed is returned when publishing into a queue that has been closed.
	ErrQueueClosed = errors.New("talker: publish queue closed")
)
