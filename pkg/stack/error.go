package stack

import "errors"

// ErrEmpty is returned by Pop and Peek when the stack has no elements.
var ErrEmpty = errors.New("stack is empty")
