package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/papercomputeco/engram/pkg/memory"
)

// Result is the outcome of one applied command, as seen by an observer.
type Result struct {
	// Output is the check output, when the command was a check.
	Output string

	// NewClone is the number assigned by a clone command, 0 otherwise.
	NewClone int
}

// Observer is notified after each successfully applied command. Used by the
// CLI to publish operation events without the runner knowing about event
// transports.
type Observer func(cmd Command, res Result)

// Option configures a Runner.
type Option func(*Runner)

// WithObserver registers an observer called after every applied command.
func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		r.observer = fn
	}
}

// Runner applies parsed commands to a memory registry and writes check
// outputs, one per line, to an io.Writer.
type Runner struct {
	registry *memory.Registry[int]
	out      io.Writer
	observer Observer
	applied  int
}

// NewRunner creates a runner over the given registry. Check outputs are
// written to out.
func NewRunner(registry *memory.Registry[int], out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		out:      out,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Applied returns the number of commands applied so far.
func (r *Runner) Applied() int {
	return r.applied
}

// Apply applies a single command to the registry. Registry errors are
// returned unchanged; only check and clone produce output.
func (r *Runner) Apply(cmd Command) (Result, error) {
	var res Result

	switch cmd.Verb {
	case VerbLearn:
		if err := r.registry.Learn(cmd.Clone, cmd.Value); err != nil {
			return res, err
		}

	case VerbRollback:
		if err := r.registry.Rollback(cmd.Clone); err != nil {
			return res, err
		}

	case VerbRelearn:
		if err := r.registry.Relearn(cmd.Clone); err != nil {
			return res, err
		}

	case VerbClone:
		n, err := r.registry.Clone(cmd.Clone)
		if err != nil {
			return res, err
		}
		res.NewClone = n

	case VerbCheck:
		out, err := r.registry.Check(cmd.Clone)
		if err != nil {
			return res, err
		}
		res.Output = out

		if _, err := fmt.Fprintln(r.out, out); err != nil {
			return res, fmt.Errorf("writing check output: %w", err)
		}

	default:
		return res, ParseError{Input: string(cmd.Verb), Reason: "unknown verb"}
	}

	r.applied++
	if r.observer != nil {
		r.observer(cmd, res)
	}

	return res, nil
}

// Run reads a script line by line, parses each non-blank line, and applies
// it. It stops at the first parse or registry error, wrapping it with the
// offending line number.
func (r *Runner) Run(script io.Reader) error {
	scanner := bufio.NewScanner(script)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		cmd, err := ParseLine(text)
		if err != nil {
			var perr ParseError
			if errors.As(err, &perr) {
				perr.Line = line
				return perr
			}
			return err
		}

		if _, err := r.Apply(cmd); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	return nil
}
