package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-co-op/gocron/v2"
	"github.com/questpilot/hackquest-bot/internal/domain/accounts"
	"github.com/questpilot/hackquest-bot/questpilot"
	"github.com/questpilot/hackquest-bot/questpilot/logger"
	"github.com/spf13/cobra"
)

var (
	assumeYes bool
	runOnce   bool

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the configured actions for every account",
		RunE:  runE,
	}

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func init() {
	runCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "start without the confirmation menu")
	runCmd.Flags().BoolVar(&runOnce, "once", false, "run a single pass even when a schedule is configured")
	rootCmd.AddCommand(runCmd)
}

func runE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := questpilot.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	accs, err := app.LoadAccounts()
	if err != nil {
		return err
	}

	fmt.Println(banner(len(accs)))
	if !assumeYes {
		ok, err := confirmStart()
		if err != nil {
			return err
		}
		if !ok {
			logger.LogSystem("Cancelled")
			return nil
		}
	}

	if runOnce || cfg.Schedule.EveryHours <= 0 {
		app.RunPass(ctx, accs)
		return nil
	}
	return runScheduled(ctx, app, accs)
}

// runScheduled runs a pass immediately and then every schedule.every_hours
// until the context is cancelled. Passes never overlap.
func runScheduled(ctx context.Context, app *questpilot.App, accs []accounts.Account) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	every := time.Duration(cfg.Schedule.EveryHours) * time.Hour
	job, err := sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			app.RunPass(ctx, accs)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule passes: %w", err)
	}

	sched.Start()
	logger.LogSystem("Scheduled passes", slog.Duration("every", every))

	<-ctx.Done()
	if next, err := job.NextRun(); err == nil {
		logger.LogSystem("Stopping scheduler", slog.Time("next_run", next))
	}
	return sched.Shutdown()
}

func banner(accountCount int) string {
	actions := strings.Join(cfg.Actions, ", ")
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("QuestPilot"),
		mutedStyle.Render(fmt.Sprintf("accounts: %d  threads: %d", accountCount, cfg.General.Threads)),
		mutedStyle.Render("actions: "+actions),
	)
	return bannerStyle.Render(body)
}

func confirmStart() (bool, error) {
	var start bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start processing accounts?").
				Affirmative("Start").
				Negative("Exit").
				Value(&start),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return start, err
}
