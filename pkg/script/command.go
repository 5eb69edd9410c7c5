// Package script implements the plain-text command language that drives a
// memory registry: one command per line, e.g. "learn 1 5" or "check 2".
//
// The package is a thin front end. It parses lines into typed commands and
// forwards them to a memory.Registry; it performs no memory semantics of
// its own.
package script

// Verb is one of the five operations a command line can request.
type Verb string

const (
	VerbLearn    Verb = "learn"
	VerbRollback Verb = "rollback"
	VerbRelearn  Verb = "relearn"
	VerbClone    Verb = "clone"
	VerbCheck    Verb = "check"
)

// Valid reports whether v is one of the five known verbs.
func (v Verb) Valid() bool {
	switch v {
	case VerbLearn, VerbRollback, VerbRelearn, VerbClone, VerbCheck:
		return true
	}
	return false
}

// TakesValue reports whether the verb requires a fact value argument.
func (v Verb) TakesValue() bool {
	return v == VerbLearn
}

// Command is a single parsed command line.
type Command struct {
	// Verb is the requested operation.
	Verb Verb

	// Clone is the 1-based clone number the operation addresses.
	Clone int

	// Value is the fact value for learn commands. Only meaningful when
	// HasValue is true.
	Value int

	// HasValue reports whether Value was present on the command line.
	HasValue bool
}
