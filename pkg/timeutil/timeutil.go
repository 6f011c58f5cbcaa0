package timeutil

import (
	"context"
	"math/rand"
	"time"
)

// ComputeJitter returns a pseudo-random duration in [0, max).
// A non-positive max yields no jitter.
func ComputeJitter(max time.Duration, rng *rand.Rand) time.Duration {
	if max <= 0 || rng == nil {
		return 0
	}
	return time.Duration(rng.Int63n(int64(max)))
}

// MaxDuration returns the largest of the given durations, or zero for none.
func MaxDuration(durations ...time.Duration) time.Duration {
	var longest time.Duration
	for i, d := range durations {
		if i == 0 || d > longest {
			longest = d
		}
	}
	return longest
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
