package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for testing with a database
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a test manager over a SQLite file in a temporary directory
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	config := DefaultConfig()
	config.Path = filepath.Join(t.TempDir(), "boardstore.db")
	config.LogLevel = "silent"
	config.RetryAttempts = 0
	config.LockTimeout = 2 * time.Second

	return newTestDBManager(config, logger)
}

// NewPostgresTestDBManager creates a test manager for PostgreSQL, skipping the
// test unless TEST_PG_HOST is set
func NewPostgresTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host := os.Getenv("TEST_PG_HOST")
	if host == "" {
		t.Skip("TEST_PG_HOST not set, skipping PostgreSQL integration test")
	}

	config := DefaultConfig()
	config.Driver = string(repository.DialectPostgres)
	config.Host = host
	config.Port = getEnvIntOrDefault("TEST_PG_PORT", 5432)
	config.Username = getEnvOrDefault("TEST_PG_USERNAME", "postgres")
	config.Password = getEnvOrDefault("TEST_PG_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("TEST_PG_DATABASE", "boardstore_test")
	config.SSLMode = getEnvOrDefault("TEST_PG_SSL_MODE", "disable")
	config.LogLevel = "silent"
	config.RetryAttempts = 0
	config.LockTimeout = 2 * time.Second

	return newTestDBManager(config, logger)
}

func newTestDBManager(config *Config, logger coreport.Logger) *TestDBManager {
	timeProvider := timeprovider.NewRealTimeProvider()
	return &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect connects to the test database and closes it when the test ends
func (m *TestDBManager) Connect(t *testing.T) {
	t.Helper()

	if _, err := m.Manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { m.Close(t) })
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// DropAllTables removes every application and history table
func (m *TestDBManager) DropAllTables(t *testing.T) {
	t.Helper()

	cascade := ""
	if m.Config.Dialect() == repository.DialectPostgres {
		cascade = " CASCADE"
	}
	for _, table := range []string{"objects", "workspaces", "groups", "schema_migrations"} {
		if err := m.Manager.DB().Exec(fmt.Sprintf(`DROP TABLE IF EXISTS "%s"%s`, table, cascade)).Error; err != nil {
			t.Fatalf("Failed to drop table %s: %v", table, err)
		}
	}
}

// Exec runs a statement against the test database
func (m *TestDBManager) Exec(t *testing.T, sql string, args ...any) {
	t.Helper()

	if err := m.Manager.DB().Exec(sql, args...).Error; err != nil {
		t.Fatalf("Failed to execute %q: %v", sql, err)
	}
}

// ColumnNames returns the live column names of a table in order
func (m *TestDBManager) ColumnNames(t *testing.T, table string) []string {
	t.Helper()

	repo := repository.NewSchemaRepository(m.Manager.DB(), m.Config.Dialect(), repository.DetectionHistory, m.Logger)
	columns, err := repo.Columns(context.Background(), table)
	if err != nil {
		t.Fatalf("Failed to list columns of %s: %v", table, err)
	}

	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
	}
	return names
}

// Helper functions to get environment variables or defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
