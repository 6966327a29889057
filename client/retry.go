package client

import (
	"context"
	"time"
)

// retryVerdict is the scheduler's decision for one classified attempt.
type retryVerdict int

const (
	// retryStop: terminal outcome, no further attempts.
	retryStop retryVerdict = iota
	// retryWait: retriable with budget left; wait then re-attempt.
	retryWait
	// retryExhausted: retriable, but the attempt budget is spent.
	retryExhausted
)

// retryScheduler decides whether another attempt is allowed and how long to
// wait before it. The wait is either the server's throttle hint or the fixed
// default delay; there is no exponential growth across attempts.
type retryScheduler struct {
	defaultDelay time.Duration
}

func newRetryScheduler(defaultDelay time.Duration) retryScheduler {
	if defaultDelay <= 0 {
		defaultDelay = DefaultRetryDelay
	}
	return retryScheduler{defaultDelay: defaultDelay}
}

// decide takes the 1-based attempt index, the attempt budget, and the
// classified outcome. The returned duration is meaningful only for retryWait.
func (s retryScheduler) decide(attempt, maxAttempts int, o attemptOutcome) (retryVerdict, time.Duration) {
	if !o.retriable() {
		return retryStop, 0
	}
	if attempt >= maxAttempts {
		return retryExhausted, 0
	}
	// Hints are honored only for throttled outcomes; classify never sets
	// one for plain server errors.
	if o.hasRetryAfter {
		return retryWait, o.retryAfter
	}
	return retryWait, s.defaultDelay
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
// This is the attempt loop's only suspension point.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
