package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
	"github.com/disgoorg/snowflake/v2"
	"github.com/questpilot/hackquest-bot/internal/domain/scheduler"
)

const (
	colorSuccess = 0x57F287
	colorPartial = 0xFEE75C
	colorFailure = 0xED4245

	// Discord rejects embed fields longer than this.
	maxFieldLength    = 1024
	maxListedFailures = 10
)

type embedSender interface {
	CreateEmbeds(embeds []discord.Embed, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Notifier posts pass summaries to a Discord webhook.
type Notifier struct {
	client    embedSender
	webhookID snowflake.ID
	close     func(context.Context)
}

// New returns nil when url is empty; a nil Notifier drops every summary.
func New(url string) (*Notifier, error) {
	if url == "" {
		return nil, nil
	}
	client, err := webhook.NewWithURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid discord webhook url: %w", err)
	}
	return &Notifier{client: client, webhookID: client.ID(), close: client.Close}, nil
}

// Pass is the summary of one scheduler pass.
type Pass struct {
	RunID   string
	Summary scheduler.Summary
	// CoinsHeld is the total coin balance of every stored user.
	CoinsHeld int64
}

func (n *Notifier) NotifyPass(ctx context.Context, pass Pass) error {
	if n == nil {
		return nil
	}
	msg, err := n.client.CreateEmbeds([]discord.Embed{passEmbed(pass)}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send pass summary: %w", err)
	}
	slog.Debug("Sent pass summary",
		slog.String("type", "sys"),
		slog.String("webhook", n.webhookID.String()),
		slog.String("message", msg.ID.String()))
	return nil
}

func (n *Notifier) Close(ctx context.Context) {
	if n != nil && n.close != nil {
		n.close(ctx)
	}
}

func passEmbed(pass Pass) discord.Embed {
	s := pass.Summary
	color := colorSuccess
	switch {
	case len(s.Outcomes) > 0 && s.Failed() == len(s.Outcomes):
		color = colorFailure
	case s.Failed() > 0:
		color = colorPartial
	}

	builder := discord.NewEmbedBuilder().
		SetTitle("QuestPilot pass finished").
		SetColor(color).
		SetTimestamp(time.Now()).
		AddField("Accounts", fmt.Sprintf("%d", len(s.Outcomes)), true).
		AddField("Succeeded", fmt.Sprintf("%d", s.Succeeded()), true).
		AddField("Failed", fmt.Sprintf("%d", s.Failed()), true).
		AddField("Duration", s.Took.Round(time.Second).String(), true)

	if pass.CoinsHeld > 0 {
		builder.AddField("Coins held", fmt.Sprintf("%d", pass.CoinsHeld), true)
	}
	if failures := failureLines(s); failures != "" {
		builder.AddField("Errors", failures, false)
	}
	if pass.RunID != "" {
		builder.SetFooterText("run " + pass.RunID)
	}
	return builder.Build()
}

func failureLines(s scheduler.Summary) string {
	var sb strings.Builder
	listed := 0
	for _, o := range s.Outcomes {
		if o.Err == nil {
			continue
		}
		if listed == maxListedFailures {
			fmt.Fprintf(&sb, "and %d more", s.Failed()-listed)
			break
		}
		fmt.Fprintf(&sb, "%s: %v\n", o.Account, o.Err)
		listed++
	}
	out := strings.TrimSpace(sb.String())
	if len(out) > maxFieldLength {
		out = out[:maxFieldLength-3] + "..."
	}
	return out
}
