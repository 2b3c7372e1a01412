package messagewatcher

import "github.com/nivir/beginner-tutorials/pkg/talker"

// WithMessageWatcher returns a talker Option that applies the contents of a
// file as the node's message whenever the file changes.
//
// Usage:
//
//	node, err := talker.New(cfg,
//	    messagewatcher.WithMessageWatcher(messagewatcher.Config{
//	        Path:          "/etc/talker/message.txt",
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithMessageWatcher(cfg Config) talker.Option {
	return talker.WithPlugin(New(cfg))
}
