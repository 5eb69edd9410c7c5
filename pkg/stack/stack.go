// Package stack implements a persistent, structurally-shared stack.
//
// Every mutating operation returns a new Stack value and leaves the receiver
// untouched. Stacks share their underlying node chain, so snapshotting a
// stack (or keeping an old version around after a Push) costs nothing
// beyond the stack header itself. This is what makes duplicating an entire
// memory history O(1) regardless of its length.
package stack

// node is a single immutable link in a shared chain. Its previous pointer is
// set at construction and never changes afterward, which is what makes
// sharing a chain across many stacks safe without copying.
type node[T any] struct {
	value    T
	previous *node[T]
}

// Stack is a persistent LIFO sequence. The zero value is an empty stack.
//
// Stack is a small value type (a pointer and a count); pass and store it by
// value. Push and Pop return new Stack values rather than mutating the
// receiver.
type Stack[T any] struct {
	top  *node[T]
	size int
}

// New returns an empty stack.
func New[T any]() Stack[T] {
	return Stack[T]{}
}

// Push returns a new stack with v on top. The receiver is unchanged.
// Allocates exactly one node.
func (s Stack[T]) Push(v T) Stack[T] {
	return Stack[T]{
		top:  &node[T]{value: v, previous: s.top},
		size: s.size + 1,
	}
}

// Pop returns the stack without its top element along with the value that
// was on top. Returns ErrEmpty when the stack is empty. The receiver is
// unchanged either way.
func (s Stack[T]) Pop() (Stack[T], T, error) {
	if s.top == nil {
		var zero T
		return s, zero, ErrEmpty
	}

	return Stack[T]{top: s.top.previous, size: s.size - 1}, s.top.value, nil
}

// Peek returns the top value without modifying the stack.
// Returns ErrEmpty when the stack is empty.
func (s Stack[T]) Peek() (T, error) {
	if s.top == nil {
		var zero T
		return zero, ErrEmpty
	}

	return s.top.value, nil
}

// Len returns the number of elements on the stack.
func (s Stack[T]) Len() int {
	return s.size
}

// IsEmpty reports whether the stack holds no elements.
func (s Stack[T]) IsEmpty() bool {
	return s.top == nil
}

// Snapshot returns an independent stack with the same observable content.
// The two copies share every node, and because nodes are immutable a Push or
// Pop on one copy can never be observed through the other.
func (s Stack[T]) Snapshot() Stack[T] {
	return s
}
