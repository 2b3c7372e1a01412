package talker_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nivir/beginner-tutorials/pkg/talker"
)

// =============================================================================
// Test Utilities
// =============================================================================

// testLogger implements talker.Logger for capturing log output in tests.
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, fields ...talker.LogField)    { l.log("DEBUG", msg) }
func (l *testLogger) Info(msg string, fields ...talker.LogField)     { l.log("INFO", msg) }
func (l *testLogger) Warn(msg string, fields ...talker.LogField)     { l.log("WARN", msg) }
func (l *testLogger) Error(msg string, fields ...talker.LogField)    { l.log("ERROR", msg) }
func (l *testLogger) Critical(msg string, fields ...talker.LogField) { l.log("CRITICAL", msg) }

func (l *testLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("[%s] %s", level, msg))
}

func (l *testLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.messages...)
}

// capturePublisher records everything the node publishes. When gate is set,
// PublishChatter blocks until it is closed.
type capturePublisher struct {
	mu         sync.Mutex
	chatter    []talker.ChatterMessage
	transforms []talker.TransformSample
	failWith   error
	gate       chan struct{}
}

func (p *capturePublisher) PublishChatter(_ context.Context, msg talker.ChatterMessage) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.chatter = append(p.chatter, msg)
	return nil
}

func (p *capturePublisher) PublishTransform(_ context.Context, s talker.TransformSample) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.transforms = append(p.transforms, s)
	return nil
}

func (p *capturePublisher) Chatter() []talker.ChatterMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]talker.ChatterMessage{}, p.chatter...)
}

func (p *capturePublisher) Transforms() []talker.TransformSample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]talker.TransformSample{}, p.transforms...)
}

// recordingHandler captures events.
type recordingHandler struct {
	talker.BaseEventHandler

	mu        sync.Mutex
	states    []talker.StateChangeEvent
	frequency []talker.FrequencyEvent
	ticks     []talker.TickEvent
	changes   []talker.MessageChangedEvent
	errors    []talker.PublishErrorEvent
}

func (h *recordingHandler) OnStateChange(e talker.StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e)
}

func (h *recordingHandler) OnFrequencyResolved(e talker.FrequencyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frequency = append(h.frequency, e)
}

func (h *recordingHandler) OnTick(e talker.TickEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticks = append(h.ticks, e)
}

func (h *recordingHandler) OnMessageChanged(e talker.MessageChangedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.changes = append(h.changes, e)
}

func (h *recordingHandler) OnPublishError(e talker.PublishErrorEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, e)
}

func (h *recordingHandler) Ticks() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ticks)
}

func (h *recordingHandler) Errors() []talker.PublishErrorEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]talker.PublishErrorEvent{}, h.errors...)
}

// waitFor polls cond until it holds or two seconds pass.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	if !cond() {
		t.Fatalf("timed out waiting for %s", what)
	}
}

// trackingPlugin tracks initialization and shutdown calls for testing.
type trackingPlugin struct {
	name          string
	initOrder     *[]string
	shutdownOrder *[]string
	initError     error
	shutdownError error
	cfg           talker.PluginConfig
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(_ context.Context, cfg talker.PluginConfig) error {
	if p.initError != nil {
		return p.initError
	}
	p.cfg = cfg
	*p.initOrder = append(*p.initOrder, p.name)
	return nil
}

func (p *trackingPlugin) Shutdown(context.Context) error {
	*p.shutdownOrder = append(*p.shutdownOrder, p.name)
	return p.shutdownError
}
