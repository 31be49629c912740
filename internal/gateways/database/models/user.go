package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            string    `bun:"id,pk"`
	UID           int64     `bun:"uid,notnull"`
	Username      string    `bun:"username,notnull"`
	WalletAddress string    `bun:"wallet_address,notnull,type:varchar(42)"`
	CoinBalance   int64     `bun:"coin_balance,notnull"`
	InviteCode    string    `bun:"invite_code,notnull"`
	InvitedBy     string    `bun:"invited_by,nullzero"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}
