// Package domain contains the core domain entities and value objects for the talker node.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (Redis, HTTP, logging) and contains
// only the rules of the node itself.
//
// # Entities
//
//   - [ChatterMessage]: one outgoing chatter message (sequence + text)
//   - [TransformSample]: the stamped world -> talk transform emitted every tick
//   - [MessageState]: the shared, mutex-guarded current message text
//   - [FrequencyResolution]: the validated publish rate and the notices it produced
//
// # Design Principles
//
// Value types are immutable after construction. [MessageState] is the only
// mutable entity and is safe for concurrent use.
package domain
