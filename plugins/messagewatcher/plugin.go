// Package messagewatcher keeps a talker node's message in sync with a file.
// The file is read when the node starts and again after every write, and
// its trimmed content is applied through the node's modify operation.
package messagewatcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nivir/beginner-tutorials/pkg/talker"
)

// Plugin watches a message file.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration

	logger   talker.Logger
	messages talker.Mutator
	last     string
	applied  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the message watcher plugin.
type Config struct {
	// Path is the file holding the message. Empty disables the plugin.
	Path string

	// DebounceDelay is the delay to wait after a file change before reading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no path.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new message watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "messagewatcher"
}

// Initialize applies the current file content and starts watching.
func (p *Plugin) Initialize(ctx context.Context, cfg talker.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	p.messages = cfg.Messages
	p.mu.Unlock()

	if p.path == "" {
		p.logger.Warn("Message watcher disabled: no message file configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// The directory is watched so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.apply(watchCtx)

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	p.logger.Info("Message watcher plugin initialized", talker.LogField{Key: "path", Value: p.path})
	return nil
}

// Shutdown stops the watcher and any pending debounced read.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	target := filepath.Clean(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p.debounceApply(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Message watcher: watcher error", talker.LogField{Key: "error", Value: err})
		}
	}
}

func (p *Plugin) debounceApply(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.apply(ctx)
	})
}

// apply reads the file and modifies the message if the content changed.
// A missing or empty file leaves the message untouched.
func (p *Plugin) apply(ctx context.Context) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("Message watcher: read failed", talker.LogField{Key: "error", Value: err})
		}
		return
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return
	}

	p.mu.Lock()
	if p.applied && text == p.last {
		p.mu.Unlock()
		return
	}
	p.last = text
	p.applied = true
	p.mu.Unlock()

	p.messages.Modify(ctx, talker.ModifyRequest{Input: text})
}

// Ensure Plugin implements talker.Plugin.
var _ talker.Plugin = (*Plugin)(nil)
