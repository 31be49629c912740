package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/questpilot/hackquest-bot/internal/domain/accounts"
	"github.com/questpilot/hackquest-bot/internal/domain/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	embeds []discord.Embed
	err    error
}

func (r *recordingSender) CreateEmbeds(embeds []discord.Embed, _ ...rest.RequestOpt) (*discord.Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.embeds = append(r.embeds, embeds...)
	return &discord.Message{}, nil
}

func outcomes(failed ...bool) []scheduler.Outcome {
	out := make([]scheduler.Outcome, len(failed))
	for i, f := range failed {
		out[i].Account = accounts.Account{Index: i}
		if f {
			out[i].Err = fmt.Errorf("login: %w", errors.New("unauthenticated"))
		}
	}
	return out
}

func fieldValue(embed discord.Embed, name string) (string, bool) {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func TestPassEmbed(t *testing.T) {
	tests := []struct {
		name      string
		failed    []bool
		wantColor int
	}{
		{name: "all succeeded", failed: []bool{false, false}, wantColor: colorSuccess},
		{name: "some failed", failed: []bool{false, true}, wantColor: colorPartial},
		{name: "all failed", failed: []bool{true, true}, wantColor: colorFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := passEmbed(Pass{
				RunID:   "run-1",
				Summary: scheduler.Summary{Outcomes: outcomes(tt.failed...), Took: 90 * time.Second},
			})
			assert.Equal(t, tt.wantColor, embed.Color)

			got, ok := fieldValue(embed, "Accounts")
			require.True(t, ok)
			assert.Equal(t, "2", got)
			require.NotNil(t, embed.Footer)
			assert.Equal(t, "run run-1", embed.Footer.Text)
		})
	}
}

func TestPassEmbed_ListsFailures(t *testing.T) {
	failed := make([]bool, maxListedFailures+3)
	for i := range failed {
		failed[i] = true
	}
	embed := passEmbed(Pass{
		Summary:   scheduler.Summary{Outcomes: outcomes(failed...)},
		CoinsHeld: 350,
	})

	errs, ok := fieldValue(embed, "Errors")
	require.True(t, ok)
	assert.Equal(t, maxListedFailures+1, len(strings.Split(errs, "\n")))
	assert.True(t, strings.HasSuffix(errs, "and 3 more"))
	assert.LessOrEqual(t, len(errs), maxFieldLength)

	coins, ok := fieldValue(embed, "Coins held")
	require.True(t, ok)
	assert.Equal(t, "350", coins)
}

func TestNotifier_NotifyPass(t *testing.T) {
	sender := &recordingSender{}
	n := &Notifier{client: sender}

	require.NoError(t, n.NotifyPass(context.Background(), Pass{Summary: scheduler.Summary{Outcomes: outcomes(false)}}))
	assert.Len(t, sender.embeds, 1)

	sender.err = errors.New("rate limited")
	assert.Error(t, n.NotifyPass(context.Background(), Pass{}))

	var disabled *Notifier
	assert.NoError(t, disabled.NotifyPass(context.Background(), Pass{}))
	disabled.Close(context.Background())
}

func TestNew_EmptyURL(t *testing.T) {
	n, err := New("")
	require.NoError(t, err)
	assert.Nil(t, n)
}
