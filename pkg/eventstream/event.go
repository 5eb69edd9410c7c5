// Package eventstream defines transport-neutral operation events and the
// Publisher interface for emitting them to a stream backend.
//
// Events are an audit surface over the memory registry: every successfully
// applied verb can be published downstream. The registry itself knows
// nothing about events; publishing happens at the API and CLI boundary.
package eventstream

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeOperationApplied is emitted after a verb is applied to the
	// registry.
	EventTypeOperationApplied = "engram.operation.applied"
)

// OperationAppliedEvent is a transport-neutral event payload for one
// applied registry operation.
type OperationAppliedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	// Op is the applied verb (learn, rollback, relearn, clone, check).
	Op string `json:"op"`

	// Clone is the 1-based clone number the operation addressed.
	Clone int `json:"clone"`

	// Value is the learned fact value; set only for learn operations.
	Value *int `json:"value,omitempty"`

	// NewClone is the number assigned by a clone operation.
	NewClone *int `json:"new_clone,omitempty"`

	// Output is the check output; set only for check operations.
	Output string `json:"output,omitempty"`
}

// NewOperationEvent creates an OperationAppliedEvent for the given verb and
// clone number with a fresh event ID and timestamp. Optional fields (Value,
// NewClone, Output) are set by the caller.
func NewOperationEvent(op string, clone int) *OperationAppliedEvent {
	return &OperationAppliedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeOperationApplied,
		EventID:       "evt_" + uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Op:            op,
		Clone:         clone,
	}
}
