package talker

import "context"

// Mutator replaces the node's message. *Node implements it.
type Mutator interface {
	Modify(ctx context.Context, req ModifyRequest) ModifyResponse
}

// PluginConfig is handed to plugins on Initialize.
type PluginConfig struct {
	NodeName string
	NodeID   string
	Logger   Logger
	// Messages lets a plugin act as a mutation caller.
	Messages Mutator
}

// Plugin extends a Node with optional behavior bound to its lifecycle.
type Plugin interface {
	// Name returns a short identifier used in logs.
	Name() string
	// Initialize is called on Start, in registration order. An error aborts
	// Start and leaves the node crashed.
	Initialize(ctx context.Context, cfg PluginConfig) error
	// Shutdown is called on Stop, in reverse registration order.
	Shutdown(ctx context.Context) error
}
