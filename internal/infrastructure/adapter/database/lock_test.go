package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	applogger "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocker(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "boardstore.db.lock")
	logger := applogger.NewNoopLogger()

	release, err := NewFileLocker(path, logger).Acquire(ctx)
	require.NoError(t, err)

	t.Run("Contended lock times out", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
		defer cancel()

		_, err := NewFileLocker(path, logger).Acquire(waitCtx)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrLockTimeout))
	})

	require.NoError(t, release())

	t.Run("Released lock can be taken again", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		again, err := NewFileLocker(path, logger).Acquire(waitCtx)

		require.NoError(t, err)
		assert.NoError(t, again())
	})
}

func TestFileLockerWaitsForRelease(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "boardstore.db.lock")
	logger := applogger.NewNoopLogger()

	release, err := NewFileLocker(path, logger).Acquire(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = release()
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	second, err := NewFileLocker(path, logger).Acquire(waitCtx)

	require.NoError(t, err)
	assert.NoError(t, second())
}

func TestNoopLocker(t *testing.T) {
	release, err := NewNoopLocker().Acquire(context.Background())
	require.NoError(t, err)
	assert.NoError(t, release())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewNoopLocker().Acquire(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
