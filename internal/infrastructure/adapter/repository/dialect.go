package repository

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
)

// Dialect identifies the SQL flavour of the connected database
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect converts a driver name to a Dialect
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: unsupported database driver %q", errs.ErrInvalidConfig, driver)
	}
}

// DetectionMode selects how a migration decides whether it already applies
type DetectionMode string

const (
	// DetectionHistory keeps a schema_migrations table and introspects the catalog
	DetectionHistory DetectionMode = "history"
	// DetectionProbe issues a SELECT of the column and reads the failure
	DetectionProbe DetectionMode = "probe"
)

// ParseDetectionMode converts a configuration value to a DetectionMode
func ParseDetectionMode(mode string) (DetectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", string(DetectionHistory):
		return DetectionHistory, nil
	case string(DetectionProbe):
		return DetectionProbe, nil
	default:
		return "", fmt.Errorf("%w: unknown detection mode %q", errs.ErrInvalidConfig, mode)
	}
}
