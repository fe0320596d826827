package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	MissingColumnError   ErrorType = "missing_column"
	MissingTableError    ErrorType = "missing_table"
	DuplicateColumnError ErrorType = "duplicate_column"
	TransientError       ErrorType = "transient"
	ConnectionError      ErrorType = "connection"
)

// PostgreSQL SQLSTATE codes the classifier understands
const (
	pgUndefinedColumn      = "42703"
	pgUndefinedTable       = "42P01"
	pgDuplicateColumn      = "42701"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgClassConnection      = "08"
)

// ErrorClassifier classifies SQLite and PostgreSQL driver errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	switch {
	case c.IsMissingColumn(err):
		return MissingColumnError
	case c.IsMissingTable(err):
		return MissingTableError
	case c.IsDuplicateColumn(err):
		return DuplicateColumnError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	}

	return ""
}

// IsMissingColumn checks if a statement failed because a column does not exist
func (c *ErrorClassifier) IsMissingColumn(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgUndefinedColumn
	}
	return sqliteMessageContains(err, "no such column")
}

// IsMissingTable checks if a statement failed because a table does not exist
func (c *ErrorClassifier) IsMissingTable(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgUndefinedTable
	}
	return sqliteMessageContains(err, "no such table")
}

// IsDuplicateColumn checks if ADD COLUMN failed because the column already exists
func (c *ErrorClassifier) IsDuplicateColumn(err error) bool {
	if code, ok := pgCode(err); ok {
		return code == pgDuplicateColumn
	}
	return sqliteMessageContains(err, "duplicate column name")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	if code, ok := pgCode(err); ok {
		return code == pgSerializationFailure ||
			code == pgDeadlockDetected ||
			code == pgLockNotAvailable
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		primary := sqliteErr.Code() & 0xff
		return primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if code, ok := pgCode(err); ok {
		return strings.HasPrefix(code, pgClassConnection)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "unable to open database file") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "no such host")
}

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

func sqliteMessageContains(err error, fragment string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), fragment)
}
