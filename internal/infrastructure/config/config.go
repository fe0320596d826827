package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
)

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    database.Config `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig contains settings of the status HTTP server
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Mode              string        `mapstructure:"mode"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// Address returns host:port for net/http
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction reports whether logs should be emitted as JSON
func (l LoggerConfig) IsProduction() bool {
	return strings.EqualFold(l.Format, "json")
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server shutdown timeout must be positive")
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid logger level: %q", c.Logger.Level))
	}
	switch strings.ToLower(c.Logger.Format) {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("invalid logger format: %q", c.Logger.Format))
	}

	if err := c.Database.Validate(); err != nil {
		problems = append(problems, strings.TrimPrefix(err.Error(), errs.ErrInvalidConfig.Error()+": "))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, errors.New(strings.Join(problems, "; ")))
	}
	return nil
}
