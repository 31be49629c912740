package progression

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
)

// ManageQuack creates the account pet and feeds it part of the coin
// balance.
func (r *Runner) ManageQuack(ctx context.Context, user *User) error {
	log := r.log.With(slog.String("pet", user.Username))

	err := retryDo(ctx, r, "create pet", func() error {
		err := r.actions.CreatePet(ctx, r.session, user.Username)
		if err != nil && isAlreadyExists(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return r.skip(ctx, err, "Failed to create pet")
	}
	log.Info("Pet ready")

	amount := feedAmount(user.CoinBalance)
	if amount == 0 {
		log.Debug("Nothing to feed", slog.Int64("balance", user.CoinBalance))
		return nil
	}

	portions := []int64{amount}
	if r.svc.opts.Humanize {
		portions = splitFeed(amount)
	}
	for _, portion := range portions {
		err := retryDo(ctx, r, "feed pet", func() error {
			return r.actions.FeedPet(ctx, r.session, portion)
		})
		if err != nil {
			if err := r.skip(ctx, err, "Failed to feed pet", slog.Int64("coins", portion)); err != nil {
				return err
			}
			continue
		}
		log.Info("Fed pet", slog.Int64("coins", portion))
	}
	return nil
}

// feedAmount is the whole balance below one feed step, otherwise a random
// multiple of the step no larger than the balance.
func feedAmount(balance int64) int64 {
	if balance <= 0 {
		return 0
	}
	if balance < config.PetFeedStep {
		return balance
	}
	return rand.Int64N(balance/config.PetFeedStep+1) * config.PetFeedStep
}

// splitFeed breaks amount into feed-step portions.
func splitFeed(amount int64) []int64 {
	var portions []int64
	for fed := int64(0); fed < amount; fed += config.PetFeedStep {
		portions = append(portions, min(config.PetFeedStep, amount-fed))
	}
	return portions
}

func isAlreadyExists(err error) bool {
	var fatal *platform.FatalError
	if errors.As(err, &fatal) {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "already exist")
}
