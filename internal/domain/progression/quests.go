package progression

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
)

type Quest struct {
	ID   string
	Name string
}

func (q Quest) Target() ledger.Target {
	return ledger.Quest(q.ID, q.Name)
}

const (
	QuestRegister        = "Register a HackQuest Account"
	QuestEnroll          = "Enroll in a learning track"
	QuestFinish20        = "Finish 20 quests"
	QuestDailyStreak     = "Daily Streak"
	QuestDailyCourse     = "Daily Course Complete"
	QuestGot2000Coins    = "Got 2000 coins"
	QuestQuestTerminator = "Quest terminator"
)

// Quests is the fixed catalog of one-time and milestone quests.
var Quests = []Quest{
	{ID: "25447f69-2117-4790-aeee-cfe876642ade", Name: QuestRegister},
	{ID: "1d02280a-da08-43b6-9c85-5a1447a36169", Name: QuestEnroll},
	{ID: "1426107e-3031-4d2c-956b-1995d0017739", Name: QuestFinish20},
	{ID: "e3fab3d3-e986-4076-9551-b265edaf454d", Name: QuestDailyStreak},
	{ID: "446e3fe3-b674-47e4-9682-4d700d418495", Name: QuestDailyCourse},
	{ID: "57f0eacd-d6e9-4a66-aad3-9335837dd9cc", Name: QuestGot2000Coins},
	{ID: "90b00587-ecad-4169-a809-459be2b4f2b2", Name: QuestQuestTerminator},
}

// CompleteQuests claims every catalog quest whose gate is met, in a fresh
// random order each run.
func (r *Runner) CompleteQuests(ctx context.Context, user *User) error {
	quests := make([]Quest, len(r.svc.quests))
	copy(quests, r.svc.quests)
	rand.Shuffle(len(quests), func(i, j int) {
		quests[i], quests[j] = quests[j], quests[i]
	})

	for _, q := range quests {
		if err := r.svc.ledger.Ensure(ctx, user.ID, q.Target()); err != nil {
			return err
		}
	}

	for _, q := range quests {
		if err := r.completeQuest(ctx, user, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) completeQuest(ctx context.Context, user *User, q Quest) error {
	log := r.log.With(slog.String("quest", q.Name))

	done, err := r.svc.ledger.IsCompleted(ctx, user.ID, q.Target())
	if err != nil {
		return err
	}
	if done {
		log.Debug("Quest reward already claimed")
		return nil
	}

	ok, err := r.questGate(ctx, user, q)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug("Quest not yet claimable")
		return nil
	}

	claim, err := retry(ctx, r, "claim quest", func() (platform.QuestClaim, error) {
		return r.actions.ClaimQuestReward(ctx, r.session, q.ID)
	})
	if err != nil {
		return r.skip(ctx, err, "Failed to claim quest reward")
	}
	if err := r.svc.ledger.MarkCompleted(ctx, user.ID, q.Target(), claim.Reward, claim.Exp); err != nil {
		return err
	}

	if claim.AlreadyClaimed {
		log.Info("Quest reward already claimed")
	} else {
		r.svc.observer.Claimed("quest", claim.Reward, claim.Exp)
		log.Info("Claimed quest reward",
			slog.Int64("coins", claim.Reward),
			slog.Int64("exp", claim.Exp))
	}

	return r.refreshBalance(ctx, user)
}

// questGate evaluates milestone preconditions against persisted state.
func (r *Runner) questGate(ctx context.Context, user *User, q Quest) (bool, error) {
	switch q.Name {
	case QuestGot2000Coins:
		stored, err := r.svc.users.Get(ctx, user.ID)
		if err != nil {
			return false, &ledger.StorageError{Op: "read user", Target: user.ID, Err: err}
		}
		if stored == nil {
			return false, &ledger.StorageError{Op: "read user", Target: user.ID, Err: fmt.Errorf("user not stored")}
		}
		return stored.CoinBalance >= config.CoinQuestThreshold, nil

	case QuestFinish20, QuestQuestTerminator:
		quests, err := r.svc.ledger.CountCompleted(ctx, user.ID, ledger.KindQuest)
		if err != nil {
			return false, err
		}
		quizzes, err := r.svc.ledger.CountCompleted(ctx, user.ID, ledger.KindQuiz)
		if err != nil {
			return false, err
		}
		return quests+quizzes >= config.MilestoneQuestThreshold, nil
	}
	return true, nil
}
