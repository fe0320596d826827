package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
)

// Pending lists, in order, the migrations RunMigrations would mutate. The
// live schema decides, so a recorded step whose column has vanished is pending
// again. A migration targeting a table that does not exist yet is not pending:
// EnsureSchema creates that table at its full shape.
func (e *Engine) Pending(ctx context.Context) ([]entity.MigrationSummary, error) {
	if err := ValidateMigrations(e.migrations); err != nil {
		return nil, err
	}

	schemaRepo := e.uow.GetSchemaRepository(ctx)

	var pending []entity.MigrationSummary
	for _, m := range e.migrations {
		present, err := m.Applied(ctx, schemaRepo)
		if errors.Is(err, errs.ErrTableNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking migration %d: %w", m.Version(), err)
		}
		if !present {
			pending = append(pending, entity.MigrationSummary{Version: m.Version(), Description: m.Description()})
		}
	}
	return pending, nil
}

// Status reports the recorded history, pending migrations and the live
// column set of every target table
func (e *Engine) Status(ctx context.Context) (*entity.SchemaStatus, error) {
	history := e.uow.GetMigrationRepository(ctx)
	schemaRepo := e.uow.GetSchemaRepository(ctx)

	status := &entity.SchemaStatus{
		Detection: e.detection(ctx),
		Applied:   []entity.AppliedMigration{},
		Pending:   []entity.MigrationSummary{},
	}

	if history.Enabled() {
		applied, err := history.ListApplied(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading migration history: %w", err)
		}
		status.Applied = applied
		status.Version = entity.SchemaVersion(applied)
	}

	pending, err := e.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		status.Pending = pending
	}

	if !history.Enabled() {
		status.Version = e.effectiveVersion(pending)
	}

	for _, table := range e.tables {
		tableStatus := entity.TableStatus{Name: table.Name, Columns: []entity.ColumnInfo{}}
		exists, err := schemaRepo.TableExists(ctx, table.Name)
		if err != nil {
			return nil, fmt.Errorf("checking table %s: %w", table.Name, err)
		}
		tableStatus.Exists = exists
		if exists {
			columns, err := schemaRepo.Columns(ctx, table.Name)
			if err != nil {
				return nil, fmt.Errorf("listing columns of %s: %w", table.Name, err)
			}
			tableStatus.Columns = columns
			tableStatus.Missing = table.MissingColumns(columns)
		}
		status.Tables = append(status.Tables, tableStatus)
	}

	return status, nil
}

// effectiveVersion is the highest version below the first pending migration.
// Probe mode keeps no history, so the version is inferred from the schema.
func (e *Engine) effectiveVersion(pending []entity.MigrationSummary) int64 {
	var version int64
	for _, m := range e.migrations {
		if len(pending) > 0 && m.Version() >= pending[0].Version {
			break
		}
		version = m.Version()
	}
	return version
}
