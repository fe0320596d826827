package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MigrationRepository stores applied migrations in the schema_migrations table
type MigrationRepository struct {
	db      *gorm.DB
	dialect Dialect
	enabled bool
	logger  coreport.Logger
}

// NewMigrationRepository creates a new MigrationRepository instance. A disabled
// repository records nothing and reports an empty history.
func NewMigrationRepository(db *gorm.DB, dialect Dialect, enabled bool, logger coreport.Logger) persistence.MigrationRepository {
	return &MigrationRepository{
		db:      db,
		dialect: dialect,
		enabled: enabled,
		logger:  logger,
	}
}

// Enabled reports whether history is tracked
func (r *MigrationRepository) Enabled() bool {
	return r.enabled
}

// EnsureTable creates the history table if it does not exist
func (r *MigrationRepository) EnsureTable(ctx context.Context) error {
	if !r.enabled {
		return nil
	}

	db := r.db.WithContext(ctx)
	exists, err := tableExists(db, r.dialect, persistence.MigrationHistoryTable)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	r.logger.Debug("Creating migration history table", map[string]any{
		"table": persistence.MigrationHistoryTable,
	})
	if err := db.Migrator().CreateTable(&model.SchemaMigration{}); err != nil {
		return fmt.Errorf("creating %s: %w", persistence.MigrationHistoryTable, err)
	}
	return nil
}

// ListApplied returns the recorded migrations ordered by version
func (r *MigrationRepository) ListApplied(ctx context.Context) ([]entity.AppliedMigration, error) {
	applied := []entity.AppliedMigration{}
	if !r.enabled {
		return applied, nil
	}

	db := r.db.WithContext(ctx)
	exists, err := tableExists(db, r.dialect, persistence.MigrationHistoryTable)
	if err != nil || !exists {
		return applied, err
	}

	var rows []model.SchemaMigration
	if err := db.Order("version ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading %s: %w", persistence.MigrationHistoryTable, err)
	}
	for _, row := range rows {
		applied = append(applied, row.ToEntity())
	}
	return applied, nil
}

// IsApplied reports whether the version is recorded
func (r *MigrationRepository) IsApplied(ctx context.Context, version int64) (bool, error) {
	if !r.enabled {
		return false, nil
	}

	db := r.db.WithContext(ctx)
	exists, err := tableExists(db, r.dialect, persistence.MigrationHistoryTable)
	if err != nil || !exists {
		return false, err
	}

	var count int64
	if err := db.Model(&model.SchemaMigration{}).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, fmt.Errorf("reading %s: %w", persistence.MigrationHistoryTable, err)
	}
	return count > 0, nil
}

// Record inserts a history row; an already recorded version is left as is.
// The history table is created on demand so RunMigrations works without a
// preceding EnsureSchema.
func (r *MigrationRepository) Record(ctx context.Context, applied entity.AppliedMigration) error {
	if !r.enabled {
		return nil
	}
	if err := r.EnsureTable(ctx); err != nil {
		return err
	}

	row := model.SchemaMigrationFromEntity(applied)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("recording migration %d: %w", applied.Version, result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Debug("Migration already recorded", map[string]any{"version": applied.Version})
	}
	return nil
}
