package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is the transient sentinel: the platform answered without
	// the payload the call expects.
	ErrNoData          = errors.New("no data in response")
	ErrUnauthenticated = errors.New("empty access token")
	ErrNotClaimable    = errors.New("reward not claimable")
)

// RetryableError is a failure worth another attempt after a backoff.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// FatalError aborts the operation without retrying.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func Retryable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Op: op, Err: err}
}

func Fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Op: op, Err: err}
}

// IsRetryable reports whether err carries a RetryableError and no
// FatalError wraps it.
func IsRetryable(err error) bool {
	var fe *FatalError
	if errors.As(err, &fe) {
		return false
	}
	var re *RetryableError
	return errors.As(err, &re)
}

func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
