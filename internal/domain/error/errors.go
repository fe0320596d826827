package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses and exit diagnostics
const (
	// 4xxx - Caller errors
	CodeInvalidConfig      = 4001
	CodeMigrationOrder     = 4002
	CodeDuplicateMigration = 4003
	CodeTableNotFound      = 4040
	CodeLockTimeout        = 4230

	// 5xxx - Storage errors
	CodeInternal       = 5000
	CodeConnection     = 5001
	CodeSchemaCreation = 5002
	CodeMigration      = 5003
	CodeProbeAmbiguity = 5004
)

// Base error types
var (
	// ErrConnection is returned when the database cannot be opened, pinged or locked
	ErrConnection = errors.New("database connection error")

	// ErrSchemaCreation is returned when creating the target tables fails
	ErrSchemaCreation = errors.New("schema creation failed")

	// ErrMigration is returned when a migration step fails its check or its mutation
	ErrMigration = errors.New("migration failed")

	// ErrProbeAmbiguity is returned when a column probe fails for a reason other than a missing column
	ErrProbeAmbiguity = errors.New("schema probe failed ambiguously")

	// ErrLockTimeout is returned when the migration lock is held elsewhere for longer than allowed
	ErrLockTimeout = errors.New("timed out waiting for migration lock")

	// ErrMigrationOrder is returned when the migration list is not strictly ascending by version
	ErrMigrationOrder = errors.New("migrations are not in ascending version order")

	// ErrDuplicateMigration is returned when two migrations share a version
	ErrDuplicateMigration = errors.New("duplicate migration version")

	// ErrTableNotFound is returned when an introspected table does not exist
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidConfig is returned when the configuration is missing required values
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInternal is returned for unexpected failures
	ErrInternal = errors.New("internal error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return CodeInvalidConfig
	case errors.Is(err, ErrMigrationOrder):
		return CodeMigrationOrder
	case errors.Is(err, ErrDuplicateMigration):
		return CodeDuplicateMigration
	case errors.Is(err, ErrLockTimeout):
		return CodeLockTimeout
	case errors.Is(err, ErrProbeAmbiguity):
		return CodeProbeAmbiguity
	case errors.Is(err, ErrMigration):
		return CodeMigration
	case errors.Is(err, ErrSchemaCreation):
		return CodeSchemaCreation
	case errors.Is(err, ErrConnection):
		return CodeConnection
	case errors.Is(err, ErrTableNotFound):
		return CodeTableNotFound
	default:
		return CodeInternal
	}
}

// ConnectionError represents a failure to open or lock the database
type ConnectionError struct {
	Target string
	Err    error
}

// Error implements the error interface for ConnectionError
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot open or lock database %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrConnection
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// LogFields returns a map of fields for structured logging
func (e *ConnectionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "connection_error",
		"target":     e.Target,
		"error":      errString(e.Err),
		"error_code": ErrorCode(e),
	}
}

// NewConnectionError creates a connection error for the given target
func NewConnectionError(target string, err error) error {
	return &ConnectionError{Target: target, Err: err}
}

// SchemaCreationError represents a failed CREATE TABLE during EnsureSchema
type SchemaCreationError struct {
	Table string
	Err   error
}

// Error implements the error interface for SchemaCreationError
func (e *SchemaCreationError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("creating schema: %v", e.Err)
	}
	return fmt.Sprintf("creating table %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error
func (e *SchemaCreationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrSchemaCreation
func (e *SchemaCreationError) Is(target error) bool {
	return target == ErrSchemaCreation
}

// LogFields returns a map of fields for structured logging
func (e *SchemaCreationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "schema_creation_error",
		"table":      e.Table,
		"error":      errString(e.Err),
		"error_code": CodeSchemaCreation,
	}
}

// MigrationError identifies the migration step that failed.
// Step is the 1-based position of the migration in the ordered list.
type MigrationError struct {
	Step        int
	Version     int64
	Description string
	Err         error
}

// Error implements the error interface for MigrationError
func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration step %d (version %d, %s) failed: %v",
		e.Step, e.Version, e.Description, e.Err)
}

// Unwrap returns the underlying error
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrMigration
func (e *MigrationError) Is(target error) bool {
	return target == ErrMigration
}

// LogFields returns a map of fields for structured logging
func (e *MigrationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "migration_error",
		"step":        e.Step,
		"version":     e.Version,
		"description": e.Description,
		"error":       errString(e.Err),
		"error_code":  ErrorCode(e),
	}
}

// NewMigrationError creates a migration error for the given step
func NewMigrationError(step int, version int64, description string, err error) error {
	return &MigrationError{
		Step:        step,
		Version:     version,
		Description: description,
		Err:         err,
	}
}

// ProbeAmbiguityError is returned when a column-existence check could not tell
// whether the column is absent, e.g. because the table itself is missing.
type ProbeAmbiguityError struct {
	Table  string
	Column string
	Err    error
}

// Error implements the error interface for ProbeAmbiguityError
func (e *ProbeAmbiguityError) Error() string {
	return fmt.Sprintf("cannot determine whether column %s.%s exists: %v", e.Table, e.Column, e.Err)
}

// Unwrap returns the underlying error
func (e *ProbeAmbiguityError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrProbeAmbiguity
func (e *ProbeAmbiguityError) Is(target error) bool {
	return target == ErrProbeAmbiguity
}

// LogFields returns a map of fields for structured logging
func (e *ProbeAmbiguityError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "probe_ambiguity",
		"table":      e.Table,
		"column":     e.Column,
		"error":      errString(e.Err),
		"error_code": CodeProbeAmbiguity,
	}
}

// NewProbeAmbiguityError creates a probe ambiguity error
func NewProbeAmbiguityError(table, column string, err error) error {
	return &ProbeAmbiguityError{Table: table, Column: column, Err: err}
}

// LogFields extracts structured logging fields from err when it carries them
func LogFields(err error) map[string]any {
	var carrier interface{ LogFields() map[string]any }
	if errors.As(err, &carrier) {
		return carrier.LogFields()
	}
	return map[string]any{
		"error":      errString(err),
		"error_code": ErrorCode(err),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
