package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
)

// DefaultLockTimeout bounds how long Bootstrap waits for another process's migration
// to release the migration lock
const DefaultLockTimeout = 30 * time.Second

// Engine brings a database from whatever state it is in to the latest schema.
// It is not safe for concurrent use; cross-process exclusion comes from the Locker.
type Engine struct {
	uow          persistence.UnitOfWork
	locker       persistence.Locker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	tables      []entity.TableSchema
	migrations  []Migration
	lockTimeout time.Duration
	target      string
}

// NewEngine creates an engine over the application's target tables and
// fixed migration list
func NewEngine(
	uow persistence.UnitOfWork,
	locker persistence.Locker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		uow:          uow,
		locker:       locker,
		timeProvider: timeProvider,
		logger:       logger,
		tables:       TargetTables(),
		migrations:   Migrations(),
		lockTimeout:  DefaultLockTimeout,
		target:       "database",
	}
}

// WithMigrations replaces the migration list
func (e *Engine) WithMigrations(migrations ...Migration) *Engine {
	e.migrations = migrations
	return e
}

// WithTables replaces the target table set
func (e *Engine) WithTables(tables ...entity.TableSchema) *Engine {
	e.tables = tables
	return e
}

// WithLockTimeout sets how long Bootstrap waits for the migration lock
func (e *Engine) WithLockTimeout(timeout time.Duration) *Engine {
	e.lockTimeout = timeout
	return e
}

// WithTarget names the database in connection errors and logs
func (e *Engine) WithTarget(target string) *Engine {
	e.target = target
	return e
}

// Bootstrap acquires the migration lock, then runs EnsureSchema and RunMigrations
func (e *Engine) Bootstrap(ctx context.Context) error {
	start := e.timeProvider.Now()

	lockCtx, cancel := e.timeProvider.WithTimeout(ctx, e.lockTimeout)
	release, err := e.locker.Acquire(lockCtx)
	cancel()
	if err != nil {
		connErr := errs.NewConnectionError(e.target, err)
		e.logger.Error("Failed to acquire migration lock", errs.LogFields(connErr))
		return connErr
	}
	defer func() {
		if err := release(); err != nil {
			e.logger.Warn("Failed to release migration lock", map[string]any{
				"target": e.target,
				"error":  err.Error(),
			})
		}
	}()

	if err := e.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := e.RunMigrations(ctx); err != nil {
		return err
	}

	e.logger.Info("Database schema is up to date", map[string]any{
		"target":     e.target,
		"elapsed_ms": e.timeProvider.Since(start).Milliseconds(),
	})
	return nil
}

// EnsureSchema creates every target table with its latest column set in a
// single transaction. New databases never go through the migration path.
func (e *Engine) EnsureSchema(ctx context.Context) error {
	for _, table := range e.tables {
		if err := table.Validate(); err != nil {
			return e.schemaCreationFailed(&errs.SchemaCreationError{Table: table.Name, Err: err})
		}
	}

	e.logger.Info("Ensuring database schema", map[string]any{
		"tables": len(e.tables),
	})

	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return e.schemaCreationFailed(&errs.SchemaCreationError{Err: err})
	}
	committed := false
	defer func() {
		if !committed {
			e.rollback(txCtx)
		}
	}()

	schemaRepo := e.uow.GetSchemaRepository(txCtx)
	for _, table := range e.tables {
		if err := schemaRepo.CreateTable(txCtx, table); err != nil {
			return e.schemaCreationFailed(&errs.SchemaCreationError{Table: table.Name, Err: err})
		}
	}

	history := e.uow.GetMigrationRepository(txCtx)
	if history.Enabled() {
		if err := history.EnsureTable(txCtx); err != nil {
			return e.schemaCreationFailed(&errs.SchemaCreationError{Table: persistence.MigrationHistoryTable, Err: err})
		}
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return e.schemaCreationFailed(&errs.SchemaCreationError{Err: err})
	}
	committed = true
	return nil
}

// RunMigrations applies each outstanding migration in declaration order, each
// in its own transaction together with its history row. The first failure
// stops the run.
func (e *Engine) RunMigrations(ctx context.Context) error {
	if err := ValidateMigrations(e.migrations); err != nil {
		e.logger.Error("Invalid migration list", errs.LogFields(err))
		return err
	}

	e.warnUnknownVersions(ctx)

	e.logger.Info("Running schema migrations", map[string]any{
		"count":     len(e.migrations),
		"detection": e.detection(ctx),
	})

	applied := 0
	for i, m := range e.migrations {
		step := i + 1
		changed, err := e.runStep(ctx, step, m)
		if err != nil {
			migErr := errs.NewMigrationError(step, m.Version(), m.Description(), err)
			e.logger.Error("Migration failed", errs.LogFields(migErr))
			return migErr
		}
		if changed {
			applied++
		}
	}

	e.logger.Info("Schema migrations complete", map[string]any{
		"applied": applied,
		"total":   len(e.migrations),
	})
	return nil
}

// runStep evaluates and applies a single migration; it reports whether the
// schema was mutated
func (e *Engine) runStep(ctx context.Context, step int, m Migration) (bool, error) {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			e.rollback(txCtx)
		}
	}()

	history := e.uow.GetMigrationRepository(txCtx)
	schemaRepo := e.uow.GetSchemaRepository(txCtx)

	recorded := false
	if history.Enabled() {
		recorded, err = history.IsApplied(txCtx, m.Version())
		if err != nil {
			return false, fmt.Errorf("reading migration history: %w", err)
		}
	}

	present, err := m.Applied(txCtx, schemaRepo)
	if err != nil {
		return false, err
	}

	if recorded && present {
		e.logger.Debug("Migration already recorded", map[string]any{
			"step":    step,
			"version": m.Version(),
		})
		return false, nil
	}

	changed := false
	if present {
		// Satisfied out-of-band, e.g. by a manual ALTER TABLE.
		e.logger.Info("Migration already satisfied, skipping mutation", map[string]any{
			"step":        step,
			"version":     m.Version(),
			"description": m.Description(),
		})
	} else {
		if recorded {
			// The table was rebuilt behind our back in an older shape.
			e.logger.Warn("Recorded migration is missing from the schema, reapplying", map[string]any{
				"step":    step,
				"version": m.Version(),
			})
		} else {
			e.logger.Info("Migration: "+m.Description(), map[string]any{
				"step":    step,
				"version": m.Version(),
			})
		}
		if err := m.Apply(txCtx, schemaRepo); err != nil {
			return false, err
		}
		changed = true
	}

	if history.Enabled() && !recorded {
		record := entity.AppliedMigration{
			Version:     m.Version(),
			Description: m.Description(),
			AppliedAt:   e.timeProvider.Now(),
		}
		if err := history.Record(txCtx, record); err != nil {
			return false, fmt.Errorf("recording migration: %w", err)
		}
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return false, err
	}
	committed = true
	return changed, nil
}

// warnUnknownVersions logs history rows written by a newer build. They are
// left untouched: the schema only grows, so older code keeps working.
func (e *Engine) warnUnknownVersions(ctx context.Context) {
	history := e.uow.GetMigrationRepository(ctx)
	if !history.Enabled() {
		return
	}
	applied, err := history.ListApplied(ctx)
	if err != nil {
		e.logger.Debug("Could not list migration history", map[string]any{"error": err.Error()})
		return
	}
	known := make(map[int64]struct{}, len(e.migrations))
	for _, m := range e.migrations {
		known[m.Version()] = struct{}{}
	}
	for _, a := range applied {
		if _, ok := known[a.Version]; !ok {
			e.logger.Warn("Database records a migration unknown to this build", map[string]any{
				"version":     a.Version,
				"description": a.Description,
			})
		}
	}
}

func (e *Engine) detection(ctx context.Context) string {
	if e.uow.GetMigrationRepository(ctx).Enabled() {
		return "history"
	}
	return "probe"
}

func (e *Engine) rollback(txCtx context.Context) {
	if err := e.uow.Rollback(txCtx); err != nil {
		e.logger.Warn("Failed to roll back schema transaction", map[string]any{
			"error": err.Error(),
		})
	}
}

func (e *Engine) schemaCreationFailed(err *errs.SchemaCreationError) error {
	e.logger.Error("Failed to create database schema", err.LogFields())
	return err
}
