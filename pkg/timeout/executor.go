// Package timeout races an operation against a deadline, with an optional
// fallback producer. It is the only sanctioned path for calls into the text
// generation provider.
package timeout

import (
	"context"
	"fmt"
	"time"

	"scentMatch/pkg/logger"
)

// Fallback produces a replacement value when the operation times out or fails.
type Fallback[T any] func() (T, error)

// Options configures a single Run invocation.
type Options[T any] struct {
	Timeout  time.Duration
	Label    string
	Fallback Fallback[T] // optional
}

// Run starts op and a countdown concurrently; whichever settles first wins.
//
// On deadline: op is abandoned, not cancelled — if it completes later its
// result is discarded (it must never be cached or returned, to avoid racing
// the fallback). With a fallback the fallback result is returned; without
// one a TimeoutError carrying the label and duration is returned.
//
// On op failure before the deadline the fallback is tried once; if that also
// fails, the original error propagates wrapped with the label.
func Run[T any](ctx context.Context, op func(context.Context) (T, error), opts Options[T]) (T, error) {
	var zero T

	if opts.Timeout <= 0 {
		return zero, fmt.Errorf("%s: non-positive timeout", opts.Label)
	}

	type outcome struct {
		value T
		err   error
	}

	start := time.Now()

	// buffered so a late-finishing op never blocks; its result is dropped
	done := make(chan outcome, 1)
	go func() {
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		if out.err == nil {
			logger.Debug("timeout_executor_success", "label", opts.Label, "elapsed_ms", elapsed.Milliseconds())
			return out.value, nil
		}

		logger.Warn("timeout_executor_failure", "label", opts.Label, "elapsed_ms", elapsed.Milliseconds(), "error", out.err)

		if opts.Fallback != nil {
			if v, ferr := opts.Fallback(); ferr == nil {
				return v, nil
			}
		}

		return zero, fmt.Errorf("%s: %w", opts.Label, out.err)

	case <-timer.C:
		logger.Warn("timeout_executor_timeout", "label", opts.Label, "timeout_ms", opts.Timeout.Milliseconds())

		if opts.Fallback != nil {
			v, ferr := opts.Fallback()
			if ferr != nil {
				return zero, fmt.Errorf("%s: fallback after timeout: %w", opts.Label, ferr)
			}
			return v, nil
		}

		return zero, &TimeoutError{Label: opts.Label, Timeout: opts.Timeout}

	case <-ctx.Done():
		return zero, fmt.Errorf("%s: %w", opts.Label, ctx.Err())
	}
}
