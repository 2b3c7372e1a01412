package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nivir/beginner-tutorials/internal/domain"
	"github.com/nivir/beginner-tutorials/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field)    {}
func (mockLogger) Info(msg string, fields ...ports.Field)     {}
func (mockLogger) Warn(msg string, fields ...ports.Field)     {}
func (mockLogger) Error(msg string, fields ...ports.Field)    {}
func (mockLogger) Critical(msg string, fields ...ports.Field) {}

type logEntry struct {
	level string
	msg   string
}

// recordingLogger keeps every entry in order.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Debug(msg string, _ ...ports.Field)    { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...ports.Field)     { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...ports.Field)     { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...ports.Field)    { l.add("error", msg) }
func (l *recordingLogger) Critical(msg string, _ ...ports.Field) { l.add("critical", msg) }

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg})
}

func (l *recordingLogger) Entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry{}, l.entries...)
}

// index returns the position of the first entry with level, or -1.
func (l *recordingLogger) index(level string) int {
	for i, e := range l.Entries() {
		if e.level == level {
			return i
		}
	}
	return -1
}

// recordingPublisher captures chatter and transforms.
type recordingPublisher struct {
	mu         sync.Mutex
	chatter    []domain.ChatterMessage
	transforms []domain.TransformSample
	failWith   error
}

func (p *recordingPublisher) PublishChatter(_ context.Context, msg domain.ChatterMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.chatter = append(p.chatter, msg)
	return nil
}

func (p *recordingPublisher) PublishTransform(_ context.Context, sample domain.TransformSample) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.transforms = append(p.transforms, sample)
	return nil
}

func (p *recordingPublisher) Chatter() []domain.ChatterMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChatterMessage{}, p.chatter...)
}

func (p *recordingPublisher) Transforms() []domain.TransformSample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.TransformSample{}, p.transforms...)
}

var errTransport = errors.New("transport down")

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}
