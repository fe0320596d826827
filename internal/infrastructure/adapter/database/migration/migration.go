package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/boardstore/internal/domain/usecase/schema"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/model"
)

// MigrationManager drives the schema engine against a connected database
type MigrationManager struct {
	manager      *database.Manager
	engine       *schema.Engine
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a migration manager over an open connection
func NewMigrationManager(manager *database.Manager, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	config := manager.Config()
	engine := schema.NewEngine(manager.CreateUnitOfWork(), manager.Locker(), timeProvider, logger).
		WithLockTimeout(config.LockTimeout).
		WithTarget(config.Target())

	return &MigrationManager{
		manager:      manager,
		engine:       engine,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// SchemaUseCase exposes the engine for callers that sequence the steps themselves
func (m *MigrationManager) SchemaUseCase() usecase.SchemaUseCase {
	return m.engine
}

// LatestVersion is the version a fully migrated database reports
func (m *MigrationManager) LatestVersion() int64 {
	migrations := schema.Migrations()
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version()
}

// MigrateAll brings the database to the latest schema under the migration
// lock, then checks the row models still map onto it
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target":         m.manager.Config().Target(),
		"detection":      m.manager.Config().DetectionMode(),
		"target_version": m.LatestVersion(),
	})

	if err := m.engine.Bootstrap(ctx); err != nil {
		return err
	}

	if err := m.VerifyModels(ctx); err != nil {
		m.logger.Error("Schema does not match row models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": m.LatestVersion(),
	})
	return nil
}

// DryRun lists what MigrateAll would change without taking the lock or mutating
func (m *MigrationManager) DryRun(ctx context.Context) ([]entity.MigrationSummary, error) {
	pending, err := m.engine.Pending(ctx)
	if err != nil {
		return nil, err
	}
	m.logger.Info("Pending migrations", map[string]any{
		"count": len(pending),
	})
	return pending, nil
}

// Status reports the schema of the connected database
func (m *MigrationManager) Status(ctx context.Context) (*entity.SchemaStatus, error) {
	return m.engine.Status(ctx)
}

// VerifyModels selects every mapped column of each row model so a schema
// that lags the models fails here rather than on the first real query
func (m *MigrationManager) VerifyModels(ctx context.Context) error {
	db := m.manager.DB().WithContext(ctx)

	checks := []struct {
		model any
		dest  any
	}{
		{&model.Group{}, &[]model.Group{}},
		{&model.Workspace{}, &[]model.Workspace{}},
		{&model.Object{}, &[]model.Object{}},
	}

	for _, check := range checks {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(check.model); err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		if err := db.Select(stmt.Schema.DBNames).Limit(1).Find(check.dest).Error; err != nil {
			return fmt.Errorf("verifying %s model: %w", stmt.Schema.Table, err)
		}
	}
	return nil
}
