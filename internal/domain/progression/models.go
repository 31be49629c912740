package progression

import (
	"context"
	"time"

	"github.com/questpilot/hackquest-bot/questpilot/utils"
)

// User is the platform identity bound to a wallet after login.
type User struct {
	ID            string
	UID           int64
	Username      string
	WalletAddress string
	CoinBalance   int64
	InviteCode    string
	InvitedBy     string
	CreatedAt     time.Time
}

// UserStore persists users between runs. Get and LastCreated return nil
// when nothing is stored.
type UserStore interface {
	Get(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, user *User) error
	UpdateBalance(ctx context.Context, id string, balance int64) error
	LastCreated(ctx context.Context) (*User, error)
}

type Action string

const (
	ActionEthereumEcosystem Action = "ethereum_ecosystem"
	ActionMintCertificates  Action = "mint_certificates"
	ActionManageQuack       Action = "manage_quack"
	ActionCompleteQuests    Action = "complete_quests"
)

// ActionOrder is the order actions run in, whatever order they are
// configured in.
var ActionOrder = []Action{
	ActionEthereumEcosystem,
	ActionMintCertificates,
	ActionManageQuack,
	ActionCompleteQuests,
}

func KnownActions() []string {
	names := make([]string, len(ActionOrder))
	for i, a := range ActionOrder {
		names[i] = string(a)
	}
	return names
}

type Referral struct {
	// UseLastUser invites each new account with the code of the most
	// recently stored user.
	UseLastUser bool
	Code        string
}

type Options struct {
	Retry       RetryPolicy
	TaskDelay   utils.Range
	AnswerDelay utils.Range
	Humanize    bool
	Actions     []Action
	Referral    Referral
}

// Observer receives progress events for metrics.
type Observer interface {
	Claimed(kind string, coins, exp int64)
	Retried(op string)
}

type nopObserver struct{}

func (nopObserver) Claimed(string, int64, int64) {}
func (nopObserver) Retried(string)               {}
