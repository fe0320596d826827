package model

import (
	"time"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
)

// SchemaMigration is a row of the migration history table
type SchemaMigration struct {
	Version     int64  `gorm:"primaryKey;autoIncrement:false"`
	Description string `gorm:"type:text;not null"`
	AppliedAt   int64  `gorm:"not null"` // unix milliseconds
}

// TableName specifies the table name for the migration history model
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// ToEntity converts the model to a domain entity
func (m SchemaMigration) ToEntity() entity.AppliedMigration {
	return entity.AppliedMigration{
		Version:     m.Version,
		Description: m.Description,
		AppliedAt:   time.UnixMilli(m.AppliedAt).UTC(),
	}
}

// SchemaMigrationFromEntity converts a domain entity to the model
func SchemaMigrationFromEntity(applied entity.AppliedMigration) SchemaMigration {
	return SchemaMigration{
		Version:     applied.Version,
		Description: applied.Description,
		AppliedAt:   applied.AppliedAt.UnixMilli(),
	}
}
