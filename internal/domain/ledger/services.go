package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Ledger is the completion store the progression machine consults before
// every claim.
type Ledger interface {
	Ensure(ctx context.Context, userID string, target Target) error
	IsCompleted(ctx context.Context, userID string, target Target) (bool, error)
	MarkCompleted(ctx context.Context, userID string, target Target, reward, exp int64) error
	CountCompleted(ctx context.Context, userID string, kind Kind) (int, error)
	Totals(ctx context.Context, userID string, kind Kind) (Totals, error)
}

// StorageError marks a failed ledger operation. The account run that hit
// it cannot continue safely.
type StorageError struct {
	Op     string
	Target string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ledger %s [%s]: %v", e.Op, e.Target, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

var ErrUnknownKind = errors.New("unknown target kind")

type service struct {
	repository Repository
}

func NewService(repository Repository) *service {
	return &service{
		repository: repository,
	}
}

func (s *service) Ensure(ctx context.Context, userID string, target Target) error {
	if err := validate(target); err != nil {
		return &StorageError{Op: "ensure", Target: target.ID, Err: err}
	}
	err := s.repository.InsertIfAbsent(ctx, Record{UserID: userID, Target: target})
	if err != nil {
		return &StorageError{Op: "ensure", Target: target.ID, Err: err}
	}
	return nil
}

func (s *service) IsCompleted(ctx context.Context, userID string, target Target) (bool, error) {
	if err := validate(target); err != nil {
		return false, &StorageError{Op: "read", Target: target.ID, Err: err}
	}
	rec, err := s.repository.Get(ctx, userID, target)
	if err != nil {
		return false, &StorageError{Op: "read", Target: target.ID, Err: err}
	}
	return rec != nil && rec.Completed, nil
}

// MarkCompleted records the claim. Repeated calls overwrite reward and exp.
func (s *service) MarkCompleted(ctx context.Context, userID string, target Target, reward, exp int64) error {
	if err := validate(target); err != nil {
		return &StorageError{Op: "mark", Target: target.ID, Err: err}
	}
	err := s.repository.Upsert(ctx, Record{
		UserID:    userID,
		Target:    target,
		Completed: true,
		Reward:    reward,
		Exp:       exp,
	})
	if err != nil {
		return &StorageError{Op: "mark", Target: target.ID, Err: err}
	}
	return nil
}

func (s *service) CountCompleted(ctx context.Context, userID string, kind Kind) (int, error) {
	n, err := s.repository.CountCompleted(ctx, userID, kind)
	if err != nil {
		return 0, &StorageError{Op: "count " + kind.String(), Err: err}
	}
	return n, nil
}

func (s *service) Totals(ctx context.Context, userID string, kind Kind) (Totals, error) {
	t, err := s.repository.Totals(ctx, userID, kind)
	if err != nil {
		return Totals{}, &StorageError{Op: "totals " + kind.String(), Err: err}
	}
	return t, nil
}

func validate(target Target) error {
	switch target.Kind {
	case KindQuest, KindQuiz:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, target.Kind)
	}
	if target.ID == "" {
		return errors.New("empty target id")
	}
	return nil
}
