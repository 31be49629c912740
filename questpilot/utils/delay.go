package utils

import (
	"context"
	"math/rand/v2"
	"time"
)

// Range is an inclusive window of whole seconds.
type Range struct {
	Min int `toml:"min" validate:"gte=0"`
	Max int `toml:"max" validate:"gte=0,gtefield=Min"`
}

// Pick samples a duration uniformly from the window.
func (r Range) Pick() time.Duration {
	lo := time.Duration(r.Min) * time.Second
	hi := time.Duration(r.Max) * time.Second
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int64N(int64(hi-lo)+1))
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SleepRange sleeps for a duration sampled from r.
func SleepRange(ctx context.Context, r Range) error {
	return Sleep(ctx, r.Pick())
}
