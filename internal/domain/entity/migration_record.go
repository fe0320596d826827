package entity

import "time"

// AppliedMigration is a row of the migration history
type AppliedMigration struct {
	Version     int64     `json:"version"`
	Description string    `json:"description"`
	AppliedAt   time.Time `json:"applied_at"`
}

// MigrationSummary describes a migration without its behaviour
type MigrationSummary struct {
	Version     int64  `json:"version"`
	Description string `json:"description"`
}

// SchemaVersion returns the highest applied version, or 0 when nothing is recorded
func SchemaVersion(applied []AppliedMigration) int64 {
	var version int64
	for _, m := range applied {
		if m.Version > version {
			version = m.Version
		}
	}
	return version
}
