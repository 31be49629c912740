package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questpilot/hackquest-bot/internal/domain/progression"
	"github.com/questpilot/hackquest-bot/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type userRepository struct {
	*BaseRepository
}

var _ progression.UserStore = &userRepository{}

func NewUserRepository(db *bun.DB) *userRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func toUserModel(u *progression.User) *models.User {
	return &models.User{
		ID:            u.ID,
		UID:           u.UID,
		Username:      u.Username,
		WalletAddress: u.WalletAddress,
		CoinBalance:   u.CoinBalance,
		InviteCode:    u.InviteCode,
		InvitedBy:     u.InvitedBy,
		CreatedAt:     u.CreatedAt,
	}
}

func fromUserModel(m *models.User) *progression.User {
	return &progression.User{
		ID:            m.ID,
		UID:           m.UID,
		Username:      m.Username,
		WalletAddress: m.WalletAddress,
		CoinBalance:   m.CoinBalance,
		InviteCode:    m.InviteCode,
		InvitedBy:     m.InvitedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *userRepository) Get(ctx context.Context, id string) (*progression.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.HandleError("get", "user", err)
	}
	return fromUserModel(user), nil
}

// Save inserts the user or refreshes every field except created_at.
func (r *userRepository) Save(ctx context.Context, u *progression.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := toUserModel(u)
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (id) DO UPDATE").
		Set("uid = EXCLUDED.uid").
		Set("username = EXCLUDED.username").
		Set("wallet_address = EXCLUDED.wallet_address").
		Set("coin_balance = EXCLUDED.coin_balance").
		Set("invite_code = EXCLUDED.invite_code").
		Set("invited_by = EXCLUDED.invited_by").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return r.HandleError("save", "user", err)
}

func (r *userRepository) UpdateBalance(ctx context.Context, id string, balance int64) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("coin_balance = ?", balance).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	return r.HandleError("update balance", "user", err)
}

func (r *userRepository) LastCreated(ctx context.Context) (*progression.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.HandleError("last created", "user", err)
	}
	return fromUserModel(user), nil
}

// List returns every stored user, oldest first.
func (r *userRepository) List(ctx context.Context) ([]progression.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []*models.User
	err := r.db.NewSelect().
		Model(&rows).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "user", err)
	}

	users := make([]progression.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *fromUserModel(row))
	}
	return users, nil
}
