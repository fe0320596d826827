package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
)

// MemoryPath selects a private in-memory SQLite database
const MemoryPath = ":memory:"

// Config represents database configuration
type Config struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	Detection       string        `mapstructure:"detection"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	BusyTimeout     time.Duration `mapstructure:"busyTimeout"`
	LockTimeout     time.Duration `mapstructure:"lockTimeout"`
	LogLevel        string        `mapstructure:"logLevel"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
}

// DefaultConfig returns a Config for a SQLite file in the working directory
func DefaultConfig() *Config {
	return &Config{
		Driver:          string(repository.DialectSQLite),
		Path:            "boardstore.db",
		Port:            5432,
		SSLMode:         "disable",
		Detection:       string(repository.DetectionHistory),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		BusyTimeout:     5 * time.Second,
		LockTimeout:     30 * time.Second,
		LogLevel:        "warn",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var problems []string

	dialect, err := repository.ParseDialect(c.Driver)
	if err != nil {
		return err
	}
	if _, err := repository.ParseDetectionMode(c.Detection); err != nil {
		return err
	}

	switch dialect {
	case repository.DialectSQLite:
		if strings.TrimSpace(c.Path) == "" {
			problems = append(problems, "database path is required")
		}
	case repository.DialectPostgres:
		if c.Host == "" {
			problems = append(problems, "database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			problems = append(problems, fmt.Sprintf("invalid port number: %d", c.Port))
		}
		if c.Username == "" {
			problems = append(problems, "database username is required")
		}
		if c.Database == "" {
			problems = append(problems, "database name is required")
		}
		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			problems = append(problems, fmt.Sprintf("invalid SSL mode: %s", c.SSLMode))
		}
		if c.MaxOpenConns == 1 {
			problems = append(problems, "postgres needs at least 2 open connections, one is held by the migration lock")
		}
	}

	if c.MaxOpenConns <= 0 {
		problems = append(problems, fmt.Sprintf("max open connections must be positive, got: %d", c.MaxOpenConns))
	}
	if c.LockTimeout <= 0 {
		problems = append(problems, "lock timeout must be positive")
	}
	if c.BusyTimeout < 0 {
		problems = append(problems, "busy timeout must be non-negative")
	}
	if c.RetryAttempts < 0 {
		problems = append(problems, fmt.Sprintf("retry attempts must be non-negative, got: %d", c.RetryAttempts))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, errors.New(strings.Join(problems, "; ")))
	}
	return nil
}

// Dialect returns the SQL dialect of the configured driver
func (c *Config) Dialect() repository.Dialect {
	dialect, err := repository.ParseDialect(c.Driver)
	if err != nil {
		return repository.DialectSQLite
	}
	return dialect
}

// DetectionMode returns the configured detection mode
func (c *Config) DetectionMode() repository.DetectionMode {
	mode, err := repository.ParseDetectionMode(c.Detection)
	if err != nil {
		return repository.DetectionHistory
	}
	return mode
}

// IsMemory reports whether the configuration selects an in-memory SQLite database
func (c *Config) IsMemory() bool {
	return c.Dialect() == repository.DialectSQLite && c.Path == MemoryPath
}

// LockPath returns the advisory lock file guarding migrations of a SQLite file
func (c *Config) LockPath() string {
	return c.Path + ".lock"
}

// Target names the database in logs and errors without leaking credentials
func (c *Config) Target() string {
	if c.Dialect() == repository.DialectPostgres {
		return fmt.Sprintf("postgres://%s:%d/%s", c.Host, c.Port, c.Database)
	}
	return c.Path
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Dialect() == repository.DialectPostgres {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
		)
	}

	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", c.BusyTimeout.Milliseconds()))
	params.Add("_pragma", "foreign_keys(1)")
	// The path is escaped so '?', '#' and '%' name the same file LockPath guards.
	path := (&url.URL{Path: c.Path}).EscapedPath()
	return "file:" + path + "?" + params.Encode()
}

// WithPath returns a copy of the config pointing at another SQLite file
func (c *Config) WithPath(path string) *Config {
	newConfig := *c
	newConfig.Path = path
	return &newConfig
}

// WithDetection returns a copy of the config with another detection mode
func (c *Config) WithDetection(mode repository.DetectionMode) *Config {
	newConfig := *c
	newConfig.Detection = string(mode)
	return &newConfig
}

// WithLockTimeout returns a copy of the config with an updated lock timeout
func (c *Config) WithLockTimeout(timeout time.Duration) *Config {
	newConfig := *c
	newConfig.LockTimeout = timeout
	return &newConfig
}
