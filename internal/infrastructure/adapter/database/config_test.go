package database

import (
	"errors"
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postgresConfig() *Config {
	config := DefaultConfig()
	config.Driver = "postgres"
	config.Host = "db.internal"
	config.Username = "boardstore"
	config.Password = "s3cret"
	config.Database = "boards"
	return config
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, repository.DialectSQLite, config.Dialect())
	assert.Equal(t, repository.DetectionHistory, config.DetectionMode())
	assert.False(t, config.IsMemory())
	assert.Equal(t, 30*time.Second, config.LockTimeout)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		problem string
	}{
		{"EmptyPath", func(c *Config) { c.Path = " " }, "database path is required"},
		{"UnknownDriver", func(c *Config) { c.Driver = "oracle" }, "unsupported database driver"},
		{"UnknownDetection", func(c *Config) { c.Detection = "guess" }, "unknown detection mode"},
		{"ZeroLockTimeout", func(c *Config) { c.LockTimeout = 0 }, "lock timeout must be positive"},
		{"NoConnections", func(c *Config) { c.MaxOpenConns = 0 }, "max open connections must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)

			err := config.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tc.problem)
		})
	}
}

func TestPostgresConfigValidate(t *testing.T) {
	require.NoError(t, postgresConfig().Validate())

	config := postgresConfig()
	config.Host = ""
	config.SSLMode = "sometimes"
	config.MaxOpenConns = 1

	err := config.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "database host is required")
	assert.Contains(t, err.Error(), "invalid SSL mode: sometimes")
	assert.Contains(t, err.Error(), "at least 2 open connections")
}

func TestConfigDSN(t *testing.T) {
	sqliteConfig := DefaultConfig().WithPath("/var/lib/boardstore/app.db")

	dsn := sqliteConfig.DSN()

	assert.Contains(t, dsn, "file:/var/lib/boardstore/app.db?")
	assert.Contains(t, dsn, "_pragma=busy_timeout%285000%29")
	assert.Contains(t, dsn, "_pragma=foreign_keys%281%29")
	assert.Equal(t, "/var/lib/boardstore/app.db.lock", sqliteConfig.LockPath())
	assert.Equal(t, "/var/lib/boardstore/app.db", sqliteConfig.Target())

	pg := postgresConfig()
	assert.Equal(t, "host=db.internal port=5432 user=boardstore password=s3cret dbname=boards sslmode=disable", pg.DSN())
	assert.Equal(t, "postgres://db.internal:5432/boards", pg.Target())
	assert.NotContains(t, pg.Target(), "s3cret")
}

func TestConfigDSNEscapesPath(t *testing.T) {
	config := DefaultConfig().WithPath("/srv/boards #1?v=2%.db")

	dsn := config.DSN()

	assert.True(t, strings.HasPrefix(dsn, "file:/srv/boards%20%231%3Fv=2%25.db?_pragma="), dsn)
	assert.Equal(t, 1, strings.Count(dsn, "?"))
	assert.Equal(t, "file::memory:?", DefaultConfig().WithPath(MemoryPath).DSN()[:len("file::memory:?")])
}

func TestConfigCopies(t *testing.T) {
	base := DefaultConfig()

	probe := base.WithDetection(repository.DetectionProbe)
	short := base.WithLockTimeout(time.Second)
	memory := base.WithPath(MemoryPath)

	assert.Equal(t, repository.DetectionProbe, probe.DetectionMode())
	assert.Equal(t, time.Second, short.LockTimeout)
	assert.True(t, memory.IsMemory())
	assert.Equal(t, repository.DetectionHistory, base.DetectionMode())
	assert.Equal(t, 30*time.Second, base.LockTimeout)
	assert.False(t, base.IsMemory())
}
