package schema

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
)

// Migration is a single ordered, idempotent schema step
type Migration interface {
	// Version is the unique ordinal of the step; the list is strictly ascending
	Version() int64
	// Description is logged before the mutation runs
	Description() string
	// Applied reports whether the schema already reflects this step
	Applied(ctx context.Context, repo persistence.SchemaRepository) (bool, error)
	// Apply mutates the schema
	Apply(ctx context.Context, repo persistence.SchemaRepository) error
}

// AddColumnMigration appends a nullable or defaulted column to an existing table
type AddColumnMigration struct {
	version     int64
	table       string
	column      entity.ColumnDef
	description string
}

// NewAddColumnMigration creates an additive column migration
func NewAddColumnMigration(version int64, table string, column entity.ColumnDef) *AddColumnMigration {
	return &AddColumnMigration{
		version:     version,
		table:       table,
		column:      column,
		description: fmt.Sprintf("adding %s column to %s", column.Name, table),
	}
}

// Version returns the migration ordinal
func (m *AddColumnMigration) Version() int64 {
	return m.version
}

// Description returns the human readable summary
func (m *AddColumnMigration) Description() string {
	return m.description
}

// Table returns the table the column is added to
func (m *AddColumnMigration) Table() string {
	return m.table
}

// Column returns the column definition
func (m *AddColumnMigration) Column() entity.ColumnDef {
	return m.column
}

// Applied reports whether the column already exists
func (m *AddColumnMigration) Applied(ctx context.Context, repo persistence.SchemaRepository) (bool, error) {
	return repo.HasColumn(ctx, m.table, m.column.Name)
}

// Apply adds the column
func (m *AddColumnMigration) Apply(ctx context.Context, repo persistence.SchemaRepository) error {
	if err := m.column.ValidateAdditive(); err != nil {
		return err
	}
	return repo.AddColumn(ctx, m.table, m.column)
}

// ValidateMigrations checks versions are positive, unique and strictly ascending
// in declaration order
func ValidateMigrations(migrations []Migration) error {
	seen := make(map[int64]struct{}, len(migrations))
	var previous int64
	for i, m := range migrations {
		v := m.Version()
		if v <= 0 {
			return fmt.Errorf("%w: step %d has non-positive version %d", errs.ErrMigrationOrder, i+1, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: version %d declared twice", errs.ErrDuplicateMigration, v)
		}
		seen[v] = struct{}{}
		if v < previous {
			return fmt.Errorf("%w: step %d has version %d after version %d", errs.ErrMigrationOrder, i+1, v, previous)
		}
		previous = v
	}
	return nil
}
