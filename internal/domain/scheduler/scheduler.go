package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/accounts"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Task processes one account. Its error is recorded, never propagated to
// other accounts.
type Task func(ctx context.Context, account accounts.Account) error

type Outcome struct {
	Account accounts.Account
	Err     error
	Took    time.Duration
}

type Summary struct {
	Outcomes []Outcome
	Took     time.Duration
}

func (s Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

func (s Summary) Succeeded() int {
	return len(s.Outcomes) - s.Failed()
}

type Scheduler struct {
	threads int
	stagger utils.Range
	log     *slog.Logger
}

func New(threads int, stagger utils.Range, log *slog.Logger) *Scheduler {
	if threads < 1 {
		threads = 1
	}
	return &Scheduler{threads: threads, stagger: stagger, log: log}
}

// Run starts one task per account, at most threads at a time, and waits for
// all of them. Launches are spaced by a random stagger delay. Cancelling ctx
// stops launching new tasks.
func (s *Scheduler) Run(ctx context.Context, accs []accounts.Account, task Task) Summary {
	start := time.Now()
	outcomes := make([]Outcome, len(accs))
	for i, acc := range accs {
		outcomes[i].Account = acc
	}

	sem := semaphore.NewWeighted(int64(min(len(accs), s.threads)))
	var g errgroup.Group
	var mu sync.Mutex

	for i, acc := range accs {
		if i > 0 {
			if err := utils.SleepRange(ctx, s.stagger); err != nil {
				s.markCancelled(outcomes[i:], err)
				break
			}
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			s.markCancelled(outcomes[i:], err)
			break
		}

		g.Go(func() error {
			defer sem.Release(1)
			began := time.Now()
			err := s.runTask(ctx, acc, task)

			mu.Lock()
			outcomes[i].Err = err
			outcomes[i].Took = time.Since(began)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	summary := Summary{Outcomes: outcomes, Took: time.Since(start)}
	s.log.Info("Run finished",
		slog.String("type", "sys"),
		slog.Int("accounts", len(accs)),
		slog.Int("succeeded", summary.Succeeded()),
		slog.Int("failed", summary.Failed()),
		slog.Duration("took", summary.Took.Round(time.Second)))
	return summary
}

func (s *Scheduler) runTask(ctx context.Context, acc accounts.Account, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			s.log.Error("Account task panicked",
				slog.String("type", "error"),
				slog.Int("account", acc.Index+1),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	if err := task(ctx, acc); err != nil {
		s.log.Error("Account failed",
			slog.String("type", "error"),
			slog.Int("account", acc.Index+1),
			slog.Any("error", err))
		return err
	}
	return nil
}

func (s *Scheduler) markCancelled(rest []Outcome, err error) {
	for i := range rest {
		rest[i].Err = fmt.Errorf("not started: %w", err)
	}
}
