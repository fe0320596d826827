package database

import (
	"context"
	"errors"
	"testing"
	"time"

	applogger "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
)

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()
	logger := applogger.NewNoopLogger()
	transient := errors.New("database is locked")
	fatal := errors.New("file is not a database")
	retryable := func(err error) bool { return errors.Is(err, transient) }

	t.Run("Succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := Retry(ctx, fastRetry(3), func() error {
			attempts++
			if attempts < 3 {
				return transient
			}
			return nil
		}, retryable, logger)

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := Retry(ctx, fastRetry(2), func() error {
			attempts++
			return transient
		}, retryable, logger)

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, attempts)
	})

	t.Run("Stops on permanent error", func(t *testing.T) {
		attempts := 0
		err := Retry(ctx, fastRetry(5), func() error {
			attempts++
			return fatal
		}, retryable, logger)

		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, attempts)
	})
}
