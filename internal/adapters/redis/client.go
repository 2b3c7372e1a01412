package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// Client is a namespaced Redis connection shared by Publisher and the
// subscriptions. It is safe for concurrent use.
type Client struct {
	rdb       *goredis.Client
	namespace string
	node      string
}

// NewClient creates a client that publishes on behalf of node.
// Returns an error if node is empty.
func NewClient(opts *goredis.Options, namespace, node string) (*Client, error) {
	if node == "" {
		return nil, fmt.Errorf("node name cannot be empty")
	}

	return &Client{
		rdb:       goredis.NewClient(opts),
		namespace: namespace,
		node:      node,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Node returns the node name stamped on published envelopes.
func (c *Client) Node() string {
	return c.node
}

// Channel returns the Pub/Sub channel name for topic.
func (c *Client) Channel(topic string) string {
	return ChannelName(c.namespace, topic)
}

// ChannelName joins namespace and topic.
func ChannelName(namespace, topic string) string {
	if namespace == "" {
		return topic
	}
	return namespace + "/" + topic
}
