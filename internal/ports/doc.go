// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the talker core and the outside world.
// They define what the application needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [ChatterPublisher]: emits chatter messages on the publish channel
//   - [TransformPublisher]: broadcasts stamped transforms
//   - [MessageStore]: the shared current-message cell
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (Redis, HTTP, zerolog, etc.).
package ports
