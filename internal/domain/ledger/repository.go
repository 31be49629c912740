package ledger

import "context"

// Repository persists completion records. Every method is a single
// transaction that is durable once it returns.
type Repository interface {
	// InsertIfAbsent stores rec unless a record for the same user and
	// target exists. The target is added to its catalog as well.
	InsertIfAbsent(ctx context.Context, rec Record) error
	// Get returns nil when no record exists.
	Get(ctx context.Context, userID string, target Target) (*Record, error)
	Upsert(ctx context.Context, rec Record) error
	CountCompleted(ctx context.Context, userID string, kind Kind) (int, error)
	Totals(ctx context.Context, userID string, kind Kind) (Totals, error)
}
