package persistence

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
)

// MigrationHistoryTable is the table recording applied migration versions
const MigrationHistoryTable = "schema_migrations"

// MigrationRepository persists the history of applied migrations
type MigrationRepository interface {
	// Enabled reports whether history is tracked; in probe mode it is not
	Enabled() bool

	// EnsureTable creates the history table if it does not exist
	EnsureTable(ctx context.Context) error

	// ListApplied returns the recorded migrations ordered by version.
	// A missing history table yields an empty list.
	ListApplied(ctx context.Context) ([]entity.AppliedMigration, error)

	// IsApplied reports whether the version is recorded
	IsApplied(ctx context.Context, version int64) (bool, error)

	// Record inserts a history row; recording an existing version is a no-op
	Record(ctx context.Context, applied entity.AppliedMigration) error
}
