package kafka

import (
	"context"
	"errors"
)

// ErrUnprocessable marks a message that no retry can fix, such as an
// undecodable payload. Consumers commit it and move on.
var ErrUnprocessable = errors.New("unprocessable message")

type (
	// Middleware wraps a handler; the first registered runs outermost.
	Middleware     func(next MessageHandler) MessageHandler
	MessageHandler func(ctx context.Context, msg Message) error
)

// Consumer delivers messages to handler until ctx is cancelled.
type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

// Producer publishes to the topic it was built for.
type Producer interface {
	Send(ctx context.Context, msg OutgoingMessage) error
}
