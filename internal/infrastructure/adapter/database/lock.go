package database

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
)

// AdvisoryLockKey identifies the schema migration lock among PostgreSQL advisory locks
const AdvisoryLockKey int64 = 0x626f617264

// FileLocker serialises migrations of a SQLite file with an advisory lock on a
// sibling file. Processes that do not cooperate are held off by busy_timeout.
type FileLocker struct {
	path   string
	logger coreport.Logger
}

// NewFileLocker creates a locker over the given lock file path
func NewFileLocker(path string, logger coreport.Logger) persistence.Locker {
	return &FileLocker{path: path, logger: logger}
}

// Acquire blocks until the file lock is held or ctx is done
func (l *FileLocker) Acquire(ctx context.Context) (func() error, error) {
	fl := flock.New(l.path)
	if err := pollLock(ctx, fl.TryLock); err != nil {
		return nil, fmt.Errorf("locking %s: %w", l.path, err)
	}

	l.logger.Debug("Acquired migration lock", map[string]any{"lock": fl.Path()})
	return func() error {
		l.logger.Debug("Releasing migration lock", map[string]any{"lock": fl.Path()})
		return fl.Unlock()
	}, nil
}

// AdvisoryLocker serialises migrations against PostgreSQL with a session-level
// advisory lock held on a dedicated connection
type AdvisoryLocker struct {
	db     *gorm.DB
	key    int64
	logger coreport.Logger
}

// NewAdvisoryLocker creates a locker using pg_try_advisory_lock
func NewAdvisoryLocker(db *gorm.DB, key int64, logger coreport.Logger) persistence.Locker {
	return &AdvisoryLocker{db: db, key: key, logger: logger}
}

// Acquire blocks until the advisory lock is held or ctx is done
func (l *AdvisoryLocker) Acquire(ctx context.Context) (func() error, error) {
	sqlDB, err := l.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	// Session-level advisory locks belong to a backend, so the same
	// connection must be used to release it.
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserving lock connection: %w", err)
	}

	err = pollLock(ctx, func() (bool, error) {
		var locked bool
		err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&locked)
		return locked, err
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advisory lock %d: %w", l.key, err)
	}

	l.logger.Debug("Acquired migration lock", map[string]any{"advisory_key": l.key})
	return func() error {
		defer conn.Close()
		_, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", l.key)
		return err
	}, nil
}

// NoopLocker is used where no other process can reach the database, such as
// an in-memory SQLite database
type NoopLocker struct{}

// NewNoopLocker creates a locker that always succeeds
func NewNoopLocker() persistence.Locker {
	return NoopLocker{}
}

// Acquire returns immediately
func (NoopLocker) Acquire(ctx context.Context) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return func() error { return nil }, nil
}
