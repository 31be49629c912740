package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/ledger"
	"github.com/questpilot/hackquest-bot/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type ledgerRepository struct {
	*BaseRepository
}

var _ ledger.Repository = &ledgerRepository{}

func NewLedgerRepository(db *bun.DB) *ledgerRepository {
	return &ledgerRepository{BaseRepository: NewBaseRepository(db)}
}

func toQuestRecord(rec ledger.Record, now time.Time) (*models.Quest, *models.UserQuest) {
	return &models.Quest{ID: rec.Target.ID, Name: rec.Target.Name},
		&models.UserQuest{
			UserID:      rec.UserID,
			QuestID:     rec.Target.ID,
			IsCompleted: rec.Completed,
			Reward:      rec.Reward,
			Exp:         rec.Exp,
			UpdatedAt:   now,
		}
}

func toQuizRecord(rec ledger.Record, now time.Time) (*models.Quiz, *models.UserQuiz) {
	return &models.Quiz{ID: rec.Target.ID, Name: rec.Target.Name},
		&models.UserQuiz{
			UserID:      rec.UserID,
			QuizID:      rec.Target.ID,
			IsCompleted: rec.Completed,
			Reward:      rec.Reward,
			Exp:         rec.Exp,
			UpdatedAt:   now,
		}
}

func fromQuestRecord(row *models.UserQuest, target ledger.Target) *ledger.Record {
	return &ledger.Record{
		UserID:    row.UserID,
		Target:    target,
		Completed: row.IsCompleted,
		Reward:    row.Reward,
		Exp:       row.Exp,
	}
}

func fromQuizRecord(row *models.UserQuiz, target ledger.Target) *ledger.Record {
	return &ledger.Record{
		UserID:    row.UserID,
		Target:    target,
		Completed: row.IsCompleted,
		Reward:    row.Reward,
		Exp:       row.Exp,
	}
}

// rowsFor returns the catalog row and the per-user row for rec.
func rowsFor(rec ledger.Record) (catalog, row interface{}, err error) {
	now := time.Now().UTC()
	switch rec.Target.Kind {
	case ledger.KindQuest:
		catalog, row = toQuestRecord(rec, now)
	case ledger.KindQuiz:
		catalog, row = toQuizRecord(rec, now)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ledger.ErrUnknownKind, rec.Target.Kind)
	}
	return catalog, row, nil
}

func conflictTarget(kind ledger.Kind) string {
	if kind == ledger.KindQuiz {
		return "CONFLICT (user_id, quiz_id) DO UPDATE"
	}
	return "CONFLICT (user_id, quest_id) DO UPDATE"
}

func (r *ledgerRepository) InsertIfAbsent(ctx context.Context, rec ledger.Record) error {
	catalog, row, err := rowsFor(rec)
	if err != nil {
		return err
	}

	return r.Transaction(ctx, "insert", rec.Target.Kind.String(), func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(catalog).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("failed to register %s: %w", rec.Target.Kind, err)
		}
		if _, err := tx.NewInsert().Model(row).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert %s record: %w", rec.Target.Kind, err)
		}
		return nil
	})
}

func (r *ledgerRepository) Get(ctx context.Context, userID string, target ledger.Target) (*ledger.Record, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var (
		rec *ledger.Record
		err error
	)
	switch target.Kind {
	case ledger.KindQuest:
		row := new(models.UserQuest)
		err = r.db.NewSelect().
			Model(row).
			Where("user_id = ?", userID).
			Where("quest_id = ?", target.ID).
			Scan(ctx)
		if err == nil {
			rec = fromQuestRecord(row, target)
		}
	case ledger.KindQuiz:
		row := new(models.UserQuiz)
		err = r.db.NewSelect().
			Model(row).
			Where("user_id = ?", userID).
			Where("quiz_id = ?", target.ID).
			Scan(ctx)
		if err == nil {
			rec = fromQuizRecord(row, target)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownKind, target.Kind)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.HandleError("get", target.Kind.String(), err)
	}
	return rec, nil
}

func (r *ledgerRepository) Upsert(ctx context.Context, rec ledger.Record) error {
	catalog, row, err := rowsFor(rec)
	if err != nil {
		return err
	}

	return r.Transaction(ctx, "upsert", rec.Target.Kind.String(), func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(catalog).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("failed to register %s: %w", rec.Target.Kind, err)
		}
		_, err := tx.NewInsert().
			Model(row).
			On(conflictTarget(rec.Target.Kind)).
			Set("is_completed = EXCLUDED.is_completed").
			Set("reward = EXCLUDED.reward").
			Set("exp = EXCLUDED.exp").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert %s record: %w", rec.Target.Kind, err)
		}
		return nil
	})
}

func (r *ledgerRepository) completedQuery(userID string, kind ledger.Kind) (*bun.SelectQuery, error) {
	q := r.db.NewSelect()
	switch kind {
	case ledger.KindQuest:
		q = q.Model((*models.UserQuest)(nil))
	case ledger.KindQuiz:
		q = q.Model((*models.UserQuiz)(nil))
	default:
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownKind, kind)
	}
	return q.Where("user_id = ?", userID).Where("is_completed = ?", true), nil
}

func (r *ledgerRepository) CountCompleted(ctx context.Context, userID string, kind ledger.Kind) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	q, err := r.completedQuery(userID, kind)
	if err != nil {
		return 0, err
	}
	n, err := q.Count(ctx)
	if err != nil {
		return 0, r.HandleError("count", kind.String(), err)
	}
	return n, nil
}

func (r *ledgerRepository) Totals(ctx context.Context, userID string, kind ledger.Kind) (ledger.Totals, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	q, err := r.completedQuery(userID, kind)
	if err != nil {
		return ledger.Totals{}, err
	}

	var totals models.CompletionTotals
	err = q.
		ColumnExpr("COUNT(*) AS completed").
		ColumnExpr("CAST(COALESCE(SUM(reward), 0) AS BIGINT) AS reward").
		ColumnExpr("CAST(COALESCE(SUM(exp), 0) AS BIGINT) AS exp").
		Scan(ctx, &totals)
	if err != nil {
		return ledger.Totals{}, r.HandleError("totals", kind.String(), err)
	}
	return ledger.Totals{
		Completed: totals.Completed,
		Reward:    totals.Reward,
		Exp:       totals.Exp,
	}, nil
}
