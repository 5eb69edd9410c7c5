// Package memory implements versioned program memory.
//
// A Clone holds a sequence of learned facts with undo/redo semantics:
// facts can be rolled back and relearned, and the whole clone can be
// duplicated in O(1) into a new version that initially shares its entire
// history with the source. A Registry collects clones under stable 1-based
// numbers and exposes the five verbs (learn, rollback, relearn, clone,
// check) as the system's sole surface.
//
// The package is deliberately free of locking, logging, and I/O. Callers
// that accept concurrent requests (e.g. the HTTP API) serialize access at
// their own boundary.
package memory

import (
	"fmt"

	"github.com/papercomputeco/engram/pkg/stack"
)

// CheckBasic is the Check output for a clone with no learned facts.
const CheckBasic = "basic"

// Clone is a single independently evolving memory version. It pairs a
// learned history with a rollback history; the two are coupled by exactly
// one rule: learning a new fact discards any rollback history.
type Clone[T any] struct {
	learned  stack.Stack[T]
	rollback stack.Stack[T]
}

// NewClone creates a clone with empty learned and rollback histories.
func NewClone[T any]() *Clone[T] {
	return &Clone[T]{}
}

// Learn appends a fact to the learned history and resets the rollback
// history. A new fact invalidates any previously rolled-back redo state.
// Learn always succeeds.
func (c *Clone[T]) Learn(v T) {
	c.learned = c.learned.Push(v)
	c.rollback = stack.New[T]()
}

// Rollback undoes the most recently learned fact, moving it onto the
// rollback history for a later Relearn. Returns ErrEmptyHistory when
// nothing has been learned; the clone is left unchanged on failure.
func (c *Clone[T]) Rollback() error {
	rest, v, err := c.learned.Pop()
	if err != nil {
		return ErrEmptyHistory
	}

	c.learned = rest
	c.rollback = c.rollback.Push(v)
	return nil
}

// Relearn redoes the most recently rolled-back fact, moving it back onto
// the learned history. Returns ErrEmptyHistory when no fact has been rolled
// back; the clone is left unchanged on failure.
func (c *Clone[T]) Relearn() error {
	rest, v, err := c.rollback.Pop()
	if err != nil {
		return ErrEmptyHistory
	}

	c.rollback = rest
	c.learned = c.learned.Push(v)
	return nil
}

// Check returns the textual form of the most recently learned fact, or
// CheckBasic when nothing has been learned. Check never mutates the clone.
func (c *Clone[T]) Check() string {
	v, err := c.learned.Peek()
	if err != nil {
		return CheckBasic
	}

	return fmt.Sprint(v)
}

// Learned returns the number of facts in the learned history.
func (c *Clone[T]) Learned() int {
	return c.learned.Len()
}

// RolledBack returns the number of facts in the rollback history.
func (c *Clone[T]) RolledBack() int {
	return c.rollback.Len()
}

// Duplicate returns a new clone whose histories are snapshots of this
// clone's at the time of the call. The snapshot shares every node with the
// source, so duplication is O(1) regardless of history length; the two
// clones evolve independently afterward.
func (c *Clone[T]) Duplicate() *Clone[T] {
	return &Clone[T]{
		learned:  c.learned.Snapshot(),
		rollback: c.rollback.Snapshot(),
	}
}
