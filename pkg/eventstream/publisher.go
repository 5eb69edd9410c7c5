package eventstream

import "context"

// Publisher publishes operation events to an event stream backend.
type Publisher interface {
	PublishOperation(ctx context.Context, event *OperationAppliedEvent) error
	Close() error
}
