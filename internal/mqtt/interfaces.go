package mqtt

import "context"

// MessageHandler receives inbound messages. It is called sequentially.
type MessageHandler func(topic string, payload []byte)

// Publisher sends payloads to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, qos byte, payload []byte) error
}

// Subscriber delivers messages from a topic to a handler
type Subscriber interface {
	Subscribe(topic string, qos byte, handler MessageHandler) error
}

// Ensure Client implements both directions
var (
	_ Publisher  = (*Client)(nil)
	_ Subscriber = (*Client)(nil)
)
