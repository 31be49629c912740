package questpilot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/questpilot/hackquest-bot/internal/domain/accounts"
	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/progression"
	"github.com/questpilot/hackquest-bot/internal/domain/scheduler"
	"github.com/questpilot/hackquest-bot/internal/gateways/database"
	"github.com/questpilot/hackquest-bot/internal/gateways/database/repositories"
	"github.com/questpilot/hackquest-bot/internal/gateways/hackquest"
	"github.com/questpilot/hackquest-bot/internal/gateways/metrics"
	"github.com/questpilot/hackquest-bot/internal/gateways/notify"
	"github.com/questpilot/hackquest-bot/internal/gateways/wallet"
	"github.com/questpilot/hackquest-bot/questpilot/config"
	"github.com/questpilot/hackquest-bot/questpilot/logger"
	"github.com/questpilot/hackquest-bot/questpilot/utils"
	"golang.org/x/time/rate"
)

type userRepository interface {
	progression.UserStore
	List(ctx context.Context) ([]progression.User, error)
}

// App owns the long-lived pieces of a run: storage, shared services and
// the request limiter every account client draws from.
type App struct {
	cfg      *Config
	db       *database.DB
	users    userRepository
	progress *progression.Service
	metrics  *metrics.Collector
	notifier *notify.Notifier
	limiter  *rate.Limiter
	log      *slog.Logger
}

func NewApp(ctx context.Context, cfg *Config) (*App, error) {
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	users := repositories.NewUserRepository(db.BunDB())
	ledgerService := ledger.NewService(repositories.NewLedgerRepository(db.BunDB()))
	collector := metrics.NewCollector()

	progress, err := progression.NewService(ledgerService, users, cfg.ProgressionOptions(), collector)
	if err != nil {
		db.Close()
		return nil, err
	}

	notifier, err := notify.New(cfg.Notify.DiscordWebhookURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		cfg:      cfg,
		db:       db,
		users:    users,
		progress: progress,
		metrics:  collector,
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(cfg.API.RequestsPerSecond), 1),
		log:      slog.Default(),
	}, nil
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	a.notifier.Close(ctx)
	a.db.Close()
}

// LoadAccounts reads the key file and pairs keys with proxies.
func (a *App) LoadAccounts() ([]accounts.Account, error) {
	keys, err := utils.ReadLines(a.cfg.Files.PrivateKeys, false)
	if err != nil {
		return nil, err
	}
	proxies, err := utils.ReadLines(a.cfg.Files.Proxies, true)
	if err != nil {
		return nil, err
	}
	return accounts.Load(keys, proxies)
}

// RunPass processes every account once and reports the outcome.
func (a *App) RunPass(ctx context.Context, accs []accounts.Account) scheduler.Summary {
	runID := uuid.NewString()
	log := a.log.With(slog.String("run", runID))
	logger.LogSystem("Starting pass",
		slog.String("run", runID),
		slog.Int("accounts", len(accs)),
		slog.Int("threads", a.cfg.General.Threads))

	sched := scheduler.New(a.cfg.General.Threads, a.cfg.Delays.BetweenAccs, log)
	summary := sched.Run(ctx, accs, a.runAccount)

	logger.LogSystem("Pass finished",
		slog.String("run", runID),
		slog.Int("succeeded", summary.Succeeded()),
		slog.Int("failed", summary.Failed()),
		slog.Duration("took", summary.Took.Round(time.Second)))

	a.report(ctx, runID, summary)
	return summary
}

func (a *App) report(ctx context.Context, runID string, summary scheduler.Summary) {
	a.metrics.RecordPass(summary)
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		logger.LogError("Failed to write metrics", err)
	}

	// The pass context may already be cancelled; the summary still goes out.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.ShutdownTimeout)
	defer cancel()

	pass := notify.Pass{RunID: runID, Summary: summary}
	if users, err := a.users.List(notifyCtx); err == nil {
		for _, u := range users {
			pass.CoinsHeld += u.CoinBalance
		}
	}
	if err := a.notifier.NotifyPass(notifyCtx, pass); err != nil {
		logger.LogError("Failed to send pass summary", err)
	}
}

func (a *App) runAccount(ctx context.Context, acc accounts.Account) error {
	log := logger.ForAccount(a.log, acc.Index)
	timeout := time.Duration(a.cfg.API.TimeoutSeconds) * time.Second

	client, err := hackquest.NewClient(hackquest.ClientConfig{
		Proxy:   acc.Proxy,
		Timeout: timeout,
		Limiter: a.limiter,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	w, err := wallet.New(ctx, wallet.Config{
		PrivateKey: acc.PrivateKey,
		RPCURL:     a.cfg.General.SepoliaRPC,
		Proxy:      acc.Proxy,
		Timeout:    timeout,
		Log:        log,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info("Starting account", slog.String("address", w.Address()))
	return a.progress.NewRunner(acc.Index, client, w, log).Run(ctx)
}

// Stats summarizes the ledger for every stored user.
func (a *App) Stats(ctx context.Context) ([]progression.Summary, error) {
	users, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]progression.Summary, 0, len(users))
	for _, u := range users {
		s, err := a.progress.Summarize(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, cfg database.DBConfig) error {
	db, err := database.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.InitializeSchema(ctx)
}
