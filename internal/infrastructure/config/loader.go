package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable the loader reads
const EnvPrefix = "BS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// envOverrides maps the short variable names operators use to config keys.
// Every key is also reachable as BS_<SECTION>_<KEY> through AutomaticEnv.
var envOverrides = map[string]string{
	"BS_DB_DRIVER":       "database.driver",
	"BS_DB_PATH":         "database.path",
	"BS_DB_HOST":         "database.host",
	"BS_DB_PORT":         "database.port",
	"BS_DB_USERNAME":     "database.username",
	"BS_DB_PASSWORD":     "database.password",
	"BS_DB_NAME":         "database.database",
	"BS_DB_SSL_MODE":     "database.sslMode",
	"BS_DB_DETECTION":    "database.detection",
	"BS_DB_LOCK_TIMEOUT": "database.lockTimeout",
	"BS_DB_LOG_LEVEL":    "database.logLevel",
	"BS_SERVER_HOST":     "server.host",
	"BS_SERVER_PORT":     "server.port",
	"BS_LOGGER_LEVEL":    "logger.level",
	"BS_LOGGER_FORMAT":   "logger.format",
}

// Loader reads configuration from YAML, .env files and the environment
type Loader struct {
	ConfigPaths []string
	DotEnvPaths []string
}

// NewLoader creates a loader over the default search paths
func NewLoader() *Loader {
	return &Loader{
		ConfigPaths: ConfigPaths,
		DotEnvPaths: DotEnvPaths,
	}
}

// LoadConfig loads and validates configuration for the environment named by BS_ENV
func LoadConfig() (*Config, error) {
	return NewLoader().Load()
}

// Load reads the configuration and validates it
func (l *Loader) Load() (*Config, error) {
	config, err := l.Read()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Read reads configs/<env>.yaml when present, then applies environment
// overrides. A missing file leaves the defaults in place. The result is not
// validated, so callers can layer further overrides first.
func (l *Loader) Read() (*Config, error) {
	if err := l.loadDotEnvFile(); err != nil {
		return nil, err
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range l.ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env
	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Variables already set in
// the environment win over the file.
func (l *Loader) loadDotEnvFile() error {
	for _, path := range l.DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")

	db := database.DefaultConfig()
	v.SetDefault("database.driver", db.Driver)
	v.SetDefault("database.path", db.Path)
	v.SetDefault("database.host", db.Host)
	v.SetDefault("database.port", db.Port)
	v.SetDefault("database.username", db.Username)
	v.SetDefault("database.password", db.Password)
	v.SetDefault("database.database", db.Database)
	v.SetDefault("database.sslMode", db.SSLMode)
	v.SetDefault("database.detection", db.Detection)
	v.SetDefault("database.maxOpenConns", db.MaxOpenConns)
	v.SetDefault("database.maxIdleConns", db.MaxIdleConns)
	v.SetDefault("database.connMaxLifetime", db.ConnMaxLifetime)
	v.SetDefault("database.busyTimeout", db.BusyTimeout)
	v.SetDefault("database.lockTimeout", db.LockTimeout)
	v.SetDefault("database.logLevel", db.LogLevel)
	v.SetDefault("database.retryAttempts", db.RetryAttempts)
	v.SetDefault("database.retryDelay", db.RetryDelay)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}

// getEnvironment determines the environment to use based on BS_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides gives the short variable names precedence over the file
func processEnvOverrides(v *viper.Viper) {
	for name, key := range envOverrides {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			v.Set(key, value)
		}
	}
}
