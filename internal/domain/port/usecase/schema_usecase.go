package usecase

import (
	"context"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
)

// SchemaUseCase defines the schema lifecycle operations a host application calls
// at startup, before issuing any other query
type SchemaUseCase interface {
	// EnsureSchema creates every target table with its latest column set.
	// Safe on fresh and existing databases.
	EnsureSchema(ctx context.Context) error

	// RunMigrations applies outstanding migrations in declaration order and
	// stops at the first failure. Safe to call on every startup.
	RunMigrations(ctx context.Context) error

	// Bootstrap runs EnsureSchema then RunMigrations while holding the
	// exclusive migration lock
	Bootstrap(ctx context.Context) error

	// Pending lists the migrations RunMigrations would mutate, without mutating
	Pending(ctx context.Context) ([]entity.MigrationSummary, error)

	// Status reports the applied history, pending steps and live columns
	Status(ctx context.Context) (*entity.SchemaStatus, error)
}
