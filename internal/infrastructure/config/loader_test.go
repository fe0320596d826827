package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func testLoader(dir string) *Loader {
	return &Loader{
		ConfigPaths: []string{dir},
		DotEnvPaths: []string{filepath.Join(dir, ".env")},
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	t.Setenv("BS_ENV", Test)

	config, err := testLoader(t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, Test, config.Environment)
	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.Equal(t, "boardstore.db", config.Database.Path)
	assert.Equal(t, "history", config.Database.Detection)
	assert.Equal(t, 30*time.Second, config.Database.LockTimeout)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 10*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "info", config.Logger.Level)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("BS_ENV", Test)
	dir := t.TempDir()
	writeFile(t, dir, "test.yaml", `
server:
  port: 9090
  shutdownTimeout: 3s
database:
  path: /var/lib/boardstore/test.db
  detection: probe
  lockTimeout: 5s
  busyTimeout: 250ms
logger:
  level: debug
  format: json
`)

	config, err := testLoader(dir).Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 3*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/boardstore/test.db", config.Database.Path)
	assert.Equal(t, "probe", config.Database.Detection)
	assert.Equal(t, 5*time.Second, config.Database.LockTimeout)
	assert.Equal(t, 250*time.Millisecond, config.Database.BusyTimeout)
	assert.Equal(t, 4, config.Database.MaxOpenConns)
	assert.Equal(t, "debug", config.Logger.Level)
	assert.True(t, config.Logger.IsProduction())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BS_ENV", Test)
	t.Setenv("BS_DB_PATH", "/srv/boardstore/app.db")
	t.Setenv("BS_DB_LOCK_TIMEOUT", "45s")
	t.Setenv("BS_SERVER_PORT", "7070")
	dir := t.TempDir()
	writeFile(t, dir, "test.yaml", `
server:
  port: 9090
database:
  path: /var/lib/boardstore/test.db
`)

	config, err := testLoader(dir).Load()

	require.NoError(t, err)
	assert.Equal(t, "/srv/boardstore/app.db", config.Database.Path)
	assert.Equal(t, 45*time.Second, config.Database.LockTimeout)
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "127.0.0.1:7070", config.Server.Address())
}

func TestDotEnvFile(t *testing.T) {
	t.Setenv("BS_ENV", Test)
	// Register cleanup, then unset so the .env value is not shadowed.
	t.Setenv("BS_DB_DETECTION", "")
	require.NoError(t, os.Unsetenv("BS_DB_DETECTION"))

	dir := t.TempDir()
	writeFile(t, dir, ".env", "BS_DB_DETECTION=probe\n")

	config, err := testLoader(dir).Load()

	require.NoError(t, err)
	assert.Equal(t, "probe", config.Database.Detection)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("BS_ENV", Test)
	dir := t.TempDir()
	writeFile(t, dir, "test.yaml", `
server:
  port: 0
database:
  driver: oracle
logger:
  level: loud
`)

	_, err := testLoader(dir).Load()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "invalid server port: 0")
	assert.Contains(t, err.Error(), `invalid logger level: "loud"`)
	assert.Contains(t, err.Error(), `unsupported database driver "oracle"`)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Setenv("BS_ENV", Test)
	dir := t.TempDir()
	writeFile(t, dir, "test.yaml", "server: [unclosed\n")

	_, err := testLoader(dir).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestReadLeavesValidationToCaller(t *testing.T) {
	t.Setenv("BS_ENV", Production)
	dir := t.TempDir()
	writeFile(t, dir, "production.yaml", `
database:
  driver: postgres
`)
	loader := testLoader(dir)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database host is required")

	config, err := loader.Read()
	require.NoError(t, err)
	assert.Equal(t, "postgres", config.Database.Driver)

	config.Database.Driver = "sqlite"
	config.Database.Path = filepath.Join(dir, "boards.db")
	assert.NoError(t, config.Validate())
}
