package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (c RetryConfig) newBackOff(ctx context.Context) backoff.BackOff {
	// BackOff implementations are stateful; always build a fresh one.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialInterval
	bo.MaxInterval = c.MaxInterval
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.MaxRetries)), ctx)
}

// Retry runs operation until it succeeds, fails with an error retryable
// rejects, or the retry budget is spent
func Retry(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	retryable func(error) bool,
	logger coreport.Logger,
) error {
	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, config.newBackOff(ctx), func(err error, wait time.Duration) {
		logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":     attempt,
			"max_retries": config.MaxRetries,
			"error":       err.Error(),
			"retry_after": wait.String(),
		})
	})
}

var errLockBusy = errors.New("lock is held by another process")

const (
	lockPollInitial = 25 * time.Millisecond
	lockPollMax     = 500 * time.Millisecond
)

// pollLock calls try with exponential backoff until it reports the lock held
// or ctx is done. Exhausting ctx yields ErrLockTimeout.
func pollLock(ctx context.Context, try func() (bool, error)) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = lockPollInitial
	bo.MaxInterval = lockPollMax
	bo.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		locked, err := try()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !locked {
			return errLockBusy
		}
		return nil
	}, backoff.WithContext(bo, ctx))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errLockBusy), ctx.Err() != nil:
		return fmt.Errorf("%w: %v", errs.ErrLockTimeout, err)
	default:
		return err
	}
}
