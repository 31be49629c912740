package progression

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
)

// Runner drives one account through login and the configured actions.
// Every step is sequential; remote failures skip the step, storage and
// authentication failures end the run.
type Runner struct {
	svc     *Service
	index   int
	actions platform.Actions
	wallet  platform.Wallet
	session *platform.Session
	log     *slog.Logger
}

func (r *Runner) Session() *platform.Session {
	return r.session
}

func (r *Runner) Run(ctx context.Context) error {
	refCode, err := r.referralCode(ctx)
	if err != nil {
		return err
	}

	user, err := r.Login(ctx, refCode)
	if err != nil {
		return err
	}

	eco, err := retry(ctx, r, "fetch ecosystem", func() (platform.Ecosystem, error) {
		return r.actions.FetchEcosystem(ctx, r.session)
	})
	if err != nil {
		return platform.Fatal("fetch ecosystem", err)
	}
	if r.session.CurrentPhaseID == "" {
		r.session.CurrentPhaseID = eco.CurrentPhaseID
	}
	r.log.Info("Fetched ecosystem",
		slog.String("ecosystem", eco.ID),
		slog.Int("phases", len(eco.Phases)))

	for _, action := range ActionOrder {
		if !slices.Contains(r.svc.opts.Actions, action) {
			continue
		}
		r.log.Debug("Starting action", slog.String("action", string(action)))

		switch action {
		case ActionEthereumEcosystem:
			err = r.CompleteEcosystem(ctx, user, eco)
		case ActionMintCertificates:
			err = r.MintCertificates(ctx, eco)
		case ActionManageQuack:
			err = r.ManageQuack(ctx, user)
		case ActionCompleteQuests:
			err = r.CompleteQuests(ctx, user)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", action, err)
		}
	}
	return nil
}

func (r *Runner) referralCode(ctx context.Context) (string, error) {
	ref := r.svc.opts.Referral
	if !ref.UseLastUser {
		return ref.Code, nil
	}
	last, err := r.svc.users.LastCreated(ctx)
	if err != nil {
		return "", &ledger.StorageError{Op: "read last user", Err: err}
	}
	if last != nil && last.InviteCode != "" {
		return last.InviteCode, nil
	}
	return ref.Code, nil
}

// Login signs the platform challenge, activates fresh accounts and stores
// the resulting user. Exhausting the retries aborts the account.
func (r *Runner) Login(ctx context.Context, refCode string) (*User, error) {
	r.log.Info("Attempting to log in")

	user, err := retry(ctx, r, "login", func() (*User, error) {
		return r.login(ctx, refCode)
	})
	if err != nil {
		return nil, platform.Fatal("login", err)
	}

	r.log.Info("Successfully logged in",
		slog.String("username", user.Username),
		slog.Int64("balance", user.CoinBalance))
	return user, nil
}

func (r *Runner) login(ctx context.Context, refCode string) (*User, error) {
	address := r.wallet.Address()
	r.session.Address = address

	challenge, err := r.actions.LoginChallenge(ctx, r.session, address)
	if err != nil {
		return nil, err
	}

	signature, err := r.wallet.SignMessage(challenge.Message)
	if err != nil {
		return nil, platform.Retryable("sign challenge", err)
	}

	identity, err := r.actions.Login(ctx, r.session, address, challenge, signature)
	if err != nil {
		return nil, err
	}
	r.session.AccessToken = identity.AccessToken

	var balance int64
	if identity.Status == platform.StatusUnactivated {
		identity, err = r.actions.ActivateAccount(ctx, r.session, refCode)
		if err != nil {
			return nil, err
		}
		r.session.AccessToken = identity.AccessToken
		r.log.Info("Activated account", slog.Bool("referred", refCode != ""))
	} else {
		balance, err = r.actions.CoinBalance(ctx, r.session)
		if err != nil {
			return nil, err
		}
	}

	user := &User{
		ID:            identity.ID,
		UID:           identity.UID,
		Username:      GenerateUsername(),
		WalletAddress: address,
		CoinBalance:   balance,
		InviteCode:    identity.InviteCode,
		InvitedBy:     identity.InvitedBy,
		CreatedAt:     time.Now().UTC(),
	}
	return r.saveUser(ctx, user)
}

// saveUser keeps the stored username and creation time of a returning user.
func (r *Runner) saveUser(ctx context.Context, user *User) (*User, error) {
	stored, err := r.svc.users.Get(ctx, user.ID)
	if err != nil {
		return nil, &ledger.StorageError{Op: "read user", Target: user.ID, Err: err}
	}
	if stored != nil {
		user.Username = stored.Username
		user.CreatedAt = stored.CreatedAt
	}
	if err := r.svc.users.Save(ctx, user); err != nil {
		return nil, &ledger.StorageError{Op: "save user", Target: user.ID, Err: err}
	}
	return user, nil
}

func (r *Runner) refreshBalance(ctx context.Context, user *User) error {
	balance, err := retry(ctx, r, "coin balance", func() (int64, error) {
		return r.actions.CoinBalance(ctx, r.session)
	})
	if err != nil {
		return r.skip(ctx, err, "Failed to refresh coin balance")
	}
	if err := r.svc.users.UpdateBalance(ctx, user.ID, balance); err != nil {
		return &ledger.StorageError{Op: "update balance", Target: user.ID, Err: err}
	}
	user.CoinBalance = balance
	r.log.Debug("Refreshed coin balance", slog.Int64("balance", balance))
	return nil
}

// skip logs a failed step and returns nil, unless the failure has to end
// the account run.
func (r *Runner) skip(ctx context.Context, err error, msg string, attrs ...any) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if platform.IsFatal(err) || ledger.IsStorageError(err) {
		return err
	}
	r.log.Warn(msg, append(attrs, slog.Any("error", err))...)
	return nil
}
