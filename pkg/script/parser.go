package script

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a command line that could not be parsed.
type ParseError struct {
	// Line is the 1-based line number within the script, or 0 when a single
	// line was parsed outside a script.
	Line int

	// Input is the offending line.
	Input string

	// Reason says what was wrong with it.
	Reason string
}

func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Input)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

// ParseLine parses a single command line into a Command. Fields are
// whitespace-separated: a verb, a clone number, and for learn a fact value.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ParseError{Input: line, Reason: "empty command"}
	}

	verb := Verb(fields[0])
	if !verb.Valid() {
		return Command{}, ParseError{Input: line, Reason: "unknown verb"}
	}

	want := 2
	if verb.TakesValue() {
		want = 3
	}
	if len(fields) != want {
		return Command{}, ParseError{Input: line, Reason: fmt.Sprintf("expected %d fields", want)}
	}

	clone, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, ParseError{Input: line, Reason: "invalid clone number"}
	}

	cmd := Command{Verb: verb, Clone: clone}

	if verb.TakesValue() {
		value, err := strconv.Atoi(fields[2])
		if err != nil {
			return Command{}, ParseError{Input: line, Reason: "invalid fact value"}
		}
		cmd.Value = value
		cmd.HasValue = true
	}

	return cmd, nil
}
