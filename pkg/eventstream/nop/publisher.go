package nop

import (
	"context"

	"github.com/papercomputeco/engram/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishOperation validates input and otherwise does nothing.
func (p *Publisher) PublishOperation(_ context.Context, event *eventstream.OperationAppliedEvent) error {
	if event == nil {
		return eventstream.ErrNilOperationEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
