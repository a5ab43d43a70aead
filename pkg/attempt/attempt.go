// Package attempt runs an ordered list of strategies, returning the first
// success. Both the two-tier user-agent retry in the fetcher and the tiered
// fallback cascade are expressed with it.
package attempt

import (
	"context"
	"errors"
)

// ErrExhausted is returned when every attempt failed without producing a
// value and without any attempt failing terminally.
var ErrExhausted = errors.New("all attempts exhausted")

// Step is one strategy. Returning a nil error short-circuits the run.
// A Terminal error aborts the remaining steps instead of falling through.
type Step[T any] func(ctx context.Context) (T, error)

type terminalError struct{ err error }

func (t terminalError) Error() string { return t.err.Error() }
func (t terminalError) Unwrap() error { return t.err }

// Terminal wraps an error so that First stops trying further steps and
// surfaces it as-is.
func Terminal(err error) error {
	return terminalError{err: err}
}

// First runs steps in order and returns the first successful value. If a step
// returns a Terminal error, that error is returned immediately. If the context
// is done between steps, its error is returned. Otherwise the last error is
// wrapped together with ErrExhausted.
func First[T any](ctx context.Context, steps ...Step[T]) (T, error) {
	var zero T
	var lastErr error
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := step(ctx)
		if err == nil {
			return v, nil
		}
		var term terminalError
		if errors.As(err, &term) {
			return zero, term.err
		}
		lastErr = err
	}
	if lastErr == nil {
		return zero, ErrExhausted
	}
	return zero, errors.Join(ErrExhausted, lastErr)
}
