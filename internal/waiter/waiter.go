// Package waiter provides the delay schedule shared by the polling waiters.
package waiter

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ComputeDelay computes the delay before the next waiter attempt from the
// current attempt count, the delay bounds, and the remaining wait time.
//
// Returns the delay, and done=true when the schedule cannot fit another
// attempt within the remaining time. The zeroth attempt gets no delay.
func ComputeDelay(attempt int64, minDelay, maxDelay, remainingTime time.Duration) (delay time.Duration, done bool, err error) {
	if minDelay > maxDelay {
		return 0, true, fmt.Errorf("maximum delay must be greater than minimum delay")
	}

	if attempt <= 0 {
		return 0, true, nil
	}
	if remainingTime <= 0 {
		return 0, true, nil
	}

	// log math below needs positive bounds
	if minDelay < 1 {
		minDelay = 1
	}
	if maxDelay < 1 {
		return 0, true, nil
	}

	defer func() {
		if remainingTime-delay <= minDelay {
			delay = remainingTime - minDelay
			done = true
		}
	}()

	// attempt ceiling prevents the shift below from overflowing
	attemptCeiling := int64(math.Log(float64(maxDelay/minDelay))/math.Log(2)) + 1

	if attempt > attemptCeiling {
		delay = maxDelay
	} else {
		ri := time.Duration(1 << uint64(attempt-1))
		delay = minDelay * ri
		if delay > maxDelay {
			delay = maxDelay
		}
	}

	if delay != minDelay {
		// jitter between the minimum and the computed delay
		delay = time.Duration(rand.Int63n(int64(delay-minDelay))) + minDelay
	}

	return delay, done, nil
}

// SleepWithContext waits for the duration to elapse or the context to be
// canceled, whichever comes first. Returns the context's error on
// cancellation.
func SleepWithContext(ctx context.Context, dur time.Duration) error {
	t := time.NewTimer(dur)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
