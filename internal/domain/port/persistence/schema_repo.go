package persistence

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
)

// SchemaRepository introspects and mutates table structure
type SchemaRepository interface {
	// TableExists reports whether a table with the given name exists
	TableExists(ctx context.Context, table string) (bool, error)

	// Columns lists the live columns of a table in declaration order
	//
	// Possible errors:
	// - ErrTableNotFound: If the table does not exist
	Columns(ctx context.Context, table string) ([]entity.ColumnInfo, error)

	// HasColumn reports whether the column exists, using the repository's
	// detection strategy (introspection or legacy probe)
	//
	// Possible errors:
	// - ProbeAmbiguityError: If presence cannot be decided, e.g. the table is missing
	HasColumn(ctx context.Context, table, column string) (bool, error)

	// CreateTable creates the table with its full column set if it does not exist
	CreateTable(ctx context.Context, table entity.TableSchema) error

	// AddColumn appends a column to an existing table
	AddColumn(ctx context.Context, table string, column entity.ColumnDef) error
}
