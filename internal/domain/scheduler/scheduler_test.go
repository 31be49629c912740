package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/accounts"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccounts(n int) []accounts.Account {
	accs := make([]accounts.Account, n)
	for i := range accs {
		accs[i] = accounts.Account{Index: i, PrivateKey: "key"}
	}
	return accs
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_Run_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	task := func(ctx context.Context, acc accounts.Account) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil
	}

	summary := New(3, utils.Range{}, discard()).Run(context.Background(), testAccounts(10), task)

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, 10, summary.Succeeded())
	assert.Zero(t, summary.Failed())
}

func TestScheduler_Run_IsolatesFailures(t *testing.T) {
	boom := errors.New("login failed")
	task := func(ctx context.Context, acc accounts.Account) error {
		switch acc.Index {
		case 1:
			return boom
		case 2:
			panic("nil map")
		}
		return nil
	}

	summary := New(2, utils.Range{}, discard()).Run(context.Background(), testAccounts(4), task)

	require.Len(t, summary.Outcomes, 4)
	assert.NoError(t, summary.Outcomes[0].Err)
	assert.ErrorIs(t, summary.Outcomes[1].Err, boom)
	assert.ErrorContains(t, summary.Outcomes[2].Err, "panic")
	assert.NoError(t, summary.Outcomes[3].Err)
	assert.Equal(t, 2, summary.Failed())
}

func TestScheduler_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	summary := New(1, utils.Range{Min: 1, Max: 1}, discard()).Run(ctx, testAccounts(3), func(ctx context.Context, acc accounts.Account) error {
		calls.Add(1)
		return nil
	})

	assert.Zero(t, calls.Load())
	assert.Equal(t, 3, summary.Failed())
}
