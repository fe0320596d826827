package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseErrorTypes(t *testing.T) {
	assert.Equal(t, "schema creation failed", ErrSchemaCreation.Error())
	assert.Equal(t, "migration failed", ErrMigration.Error())
	assert.Equal(t, "schema probe failed ambiguously", ErrProbeAmbiguity.Error())
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidConfig", ErrInvalidConfig, CodeInvalidConfig},
		{"MigrationOrder", ErrMigrationOrder, CodeMigrationOrder},
		{"DuplicateMigration", ErrDuplicateMigration, CodeDuplicateMigration},
		{"LockTimeout", ErrLockTimeout, CodeLockTimeout},
		{"TableNotFound", ErrTableNotFound, CodeTableNotFound},
		{"Connection", NewConnectionError("app.db", errors.New("permission denied")), CodeConnection},
		{"LockTimeoutInsideConnection", NewConnectionError("app.db", ErrLockTimeout), CodeLockTimeout},
		{"SchemaCreation", &SchemaCreationError{Table: "groups", Err: errors.New("disk full")}, CodeSchemaCreation},
		{"Migration", NewMigrationError(2, 2, "add column", errors.New("boom")), CodeMigration},
		{"ProbeInsideMigration", NewMigrationError(1, 1, "add column", NewProbeAmbiguityError("groups", "owner_node_id", ErrTableNotFound)), CodeProbeAmbiguity},
		{"UnknownError", errors.New("unknown error"), CodeInternal},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrMigrationOrder), CodeMigrationOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestMigrationError(t *testing.T) {
	cause := errors.New("duplicate column name: owner_node_id")
	err := NewMigrationError(3, 3, "add owner_node_id to objects", cause)

	assert.Equal(t,
		"migration step 3 (version 3, add owner_node_id to objects) failed: duplicate column name: owner_node_id",
		err.Error())
	assert.True(t, errors.Is(err, ErrMigration))
	assert.True(t, errors.Is(err, cause))

	var migErr *MigrationError
	if assert.True(t, errors.As(err, &migErr)) {
		assert.Equal(t, 3, migErr.Step)
		assert.Equal(t, int64(3), migErr.Version)
	}

	fields := migErr.LogFields()
	assert.Equal(t, "migration_error", fields["error_type"])
	assert.Equal(t, 3, fields["step"])
}

func TestProbeAmbiguityError(t *testing.T) {
	err := NewProbeAmbiguityError("groups", "owner_node_id", ErrTableNotFound)

	assert.True(t, errors.Is(err, ErrProbeAmbiguity))
	assert.True(t, errors.Is(err, ErrTableNotFound))
	assert.False(t, errors.Is(err, ErrMigration))
	assert.Contains(t, err.Error(), "groups.owner_node_id")
}

func TestConnectionError(t *testing.T) {
	err := NewConnectionError("/tmp/app.db", ErrLockTimeout)

	assert.True(t, errors.Is(err, ErrConnection))
	assert.True(t, errors.Is(err, ErrLockTimeout))
	assert.Equal(t, "/tmp/app.db", LogFields(err)["target"])
}

func TestSchemaCreationError(t *testing.T) {
	err := fmt.Errorf("ensure schema: %w", &SchemaCreationError{Table: "objects", Err: errors.New("near \"TABL\": syntax error")})

	assert.True(t, errors.Is(err, ErrSchemaCreation))
	assert.Equal(t, "objects", LogFields(err)["table"])
}

func TestLogFieldsPlainError(t *testing.T) {
	fields := LogFields(errors.New("plain"))

	assert.Equal(t, "plain", fields["error"])
	assert.Equal(t, CodeInternal, fields["error_code"])
}
