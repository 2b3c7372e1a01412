// Package talker provides an embeddable periodic broadcaster node.
//
// A Node publishes its current message on the chatter topic at a fixed
// frequency, each message prefixed with a sequence number, and announces a
// fixed world -> talk transform on every tick. Callers replace the message at
// runtime through [Node.Modify]; the next tick picks it up.
//
// # Basic Usage
//
//	cfg := talker.Config{Frequency: 10}
//
//	node, err := talker.New(cfg, talker.WithPublisher(pub))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := node.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	node.Modify(ctx, talker.ModifyRequest{Input: "hello"})
//
//	// ... run until shutdown signal ...
//
//	if err := node.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Frequency
//
// Config.Frequency is never rejected. Zero or negative values are logged and
// replaced by [DefaultFrequency] when the node starts.
//
// # Transports
//
// Publishers are injected with [WithChatterPublisher], [WithTransformPublisher]
// or [WithPublisher]. Without them the node only logs what it would publish.
// Every publisher sits behind a bounded queue that drops the oldest entry
// when full, so a slow transport never delays the publish loop.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for defaults) and pass
// it with [WithEventHandler]. Tick events are delivered synchronously from the
// publish loop and must return quickly.
//
// # Lifecycle States
//
// A Node can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Node.Status] to
// query the current state.
package talker
