package memory

import (
	"errors"
	"strconv"
)

// ErrEmptyHistory is returned by Rollback when nothing has been learned and
// by Relearn when nothing has been rolled back.
var ErrEmptyHistory = errors.New("memory history is empty")

// InvalidCloneError is returned when a clone number references a clone that
// does not exist (zero, negative, or greater than the current count).
type InvalidCloneError struct {
	Number int
}

func (e InvalidCloneError) Error() string {
	return "invalid clone number: " + strconv.Itoa(e.Number)
}
