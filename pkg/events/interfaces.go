package events

import "context"

// Sink delivers events to a downstream destination (HTTP, SQS, SNS,
// Pub/Sub). Sinks that hold connections additionally implement io.Closer.
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}
