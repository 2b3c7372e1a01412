package talker_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nivir/beginner-tutorials/pkg/talker"
)

// ExampleNew demonstrates how to embed a talker node in your application.
func ExampleNew() {
	cfg := talker.Config{
		NodeName:  "talker",
		Frequency: 10,
	}

	node, err := talker.New(cfg)
	if err != nil {
		fmt.Printf("failed to create talker: %v\n", err)
		return
	}

	if err := node.Start(context.Background()); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	// Check status (may be Starting or Running depending on timing)
	status := node.Status()
	fmt.Printf("Status is valid: %v\n", status == talker.StateStarting || status == talker.StateRunning)

	_ = node.Stop()

	// Output: Status is valid: true
}

// ExampleNode_Modify shows that a modification is echoed back and becomes
// the message of the next tick.
func ExampleNode_Modify() {
	node, _ := talker.New(talker.Config{})

	resp := node.Modify(context.Background(), talker.ModifyRequest{Input: "hello"})
	fmt.Println(resp.Modified)
	fmt.Println(node.Message())

	// Output:
	// hello
	// hello
}

// Example_withPublisher demonstrates injecting a transport.
func Example_withPublisher() {
	pub := &printPublisher{first: make(chan struct{})}

	node, err := talker.New(talker.Config{Frequency: 1}, talker.WithPublisher(pub))
	if err != nil {
		fmt.Printf("failed to create talker: %v\n", err)
		return
	}

	_ = node.Start(context.Background())
	select {
	case <-pub.first:
	case <-time.After(time.Second):
	}
	_ = node.Stop()

	// Output: chatter: 0 Written By Aman Virmani
}

// printPublisher prints the first chatter message it receives.
type printPublisher struct {
	once  sync.Once
	first chan struct{}
}

func (p *printPublisher) PublishChatter(_ context.Context, msg talker.ChatterMessage) error {
	p.once.Do(func() {
		fmt.Printf("chatter: %s\n", msg.Data())
		close(p.first)
	})
	return nil
}

func (p *printPublisher) PublishTransform(context.Context, talker.TransformSample) error {
	return nil
}

// Example_withEventHandler demonstrates how to receive node events.
func Example_withEventHandler() {
	handler := &myEventHandler{}

	node, err := talker.New(talker.Config{}, talker.WithEventHandler(handler))
	if err != nil {
		fmt.Printf("failed to create talker: %v\n", err)
		return
	}

	node.Modify(context.Background(), talker.ModifyRequest{Input: "new text"})

	// Output: Message changed: new text
}

// myEventHandler implements talker.EventHandler for event notifications.
type myEventHandler struct {
	talker.BaseEventHandler // Embed for no-op defaults
}

func (h *myEventHandler) OnMessageChanged(event talker.MessageChangedEvent) {
	fmt.Printf("Message changed: %s\n", event.Text)
}
