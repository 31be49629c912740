package progression

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
)

// RetryPolicy bounds how often a retryable remote call is repeated.
type RetryPolicy struct {
	Attempts int
	Wait     utils.Range
}

func (p RetryPolicy) tries() uint {
	if p.Attempts < 1 {
		return 1
	}
	return uint(p.Attempts)
}

// uniformBackOff waits a uniformly sampled duration before every retry.
type uniformBackOff struct {
	wait utils.Range
}

func (b uniformBackOff) NextBackOff() time.Duration {
	return b.wait.Pick()
}

func (uniformBackOff) Reset() {}

// retry runs fn until it succeeds, returns an error that is not
// platform-retryable, or the policy runs out of attempts.
func retry[T any](ctx context.Context, r *Runner, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	v, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := fn()
		if err != nil && !platform.IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(uniformBackOff{wait: r.svc.opts.Retry.Wait}),
		backoff.WithMaxTries(r.svc.opts.Retry.tries()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.svc.observer.Retried(op)
			r.log.Debug("Retrying",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.Duration("wait", next),
				slog.Any("error", err))
		}),
	)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	return v, err
}

func retryDo(ctx context.Context, r *Runner, op string, fn func() error) error {
	_, err := retry(ctx, r, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
