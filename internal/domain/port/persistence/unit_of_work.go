package persistence

import (
	"context"
)

// UnitOfWork coordinates a database transaction across the schema and
// migration history repositories so a mutation and its history row
// commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetSchemaRepository returns a schema repository bound to the current transaction
	GetSchemaRepository(ctx context.Context) SchemaRepository

	// GetMigrationRepository returns a migration history repository bound to the current transaction
	GetMigrationRepository(ctx context.Context) MigrationRepository
}
