package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Pure-Go SQLite driver registered as "sqlite"
	_ "modernc.org/sqlite"

	errs "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/repository"
)

// Manager manages database connections
type Manager struct {
	config       *Config
	db           *gorm.DB
	logger       coreport.Logger
	errorMapper  *ErrorMapper
	timeProvider coreport.TimeProvider
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
		timeProvider: timeProvider,
	}
}

// Connect opens and pings the database, retrying transient failures.
// Any failure is returned as a ConnectionError.
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	target := m.config.Target()
	m.logger.Info("Connecting to database", map[string]any{
		"driver":    m.config.Dialect(),
		"target":    target,
		"detection": m.config.DetectionMode(),
	})

	if err := m.ensureParentDir(); err != nil {
		return nil, errs.NewConnectionError(target, err)
	}

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		SkipDefaultTransaction: true,
	}

	retryConfig := DefaultRetryConfig()
	retryConfig.MaxRetries = m.config.RetryAttempts
	if m.config.RetryDelay > 0 {
		retryConfig.InitialInterval = m.config.RetryDelay
	}

	var gormDB *gorm.DB
	err := Retry(ctx, retryConfig, func() error {
		db, err := gorm.Open(m.dialector(), gormConfig)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		gormDB = db
		return nil
	}, m.errorMapper.IsRetryable, m.logger)
	if err != nil {
		m.logger.Error("Failed to connect to database", map[string]any{
			"target": target,
			"error":  err.Error(),
		})
		return nil, errs.NewConnectionError(target, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errs.NewConnectionError(target, fmt.Errorf("failed to get database connection: %w", err))
	}

	if m.config.IsMemory() {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
		sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":         m.config.Dialect(),
		"target":         target,
		"max_open_conns": sqlDB.Stats().MaxOpenConnections,
	})

	m.db = gormDB
	return m.db, nil
}

func (m *Manager) dialector() gorm.Dialector {
	if m.config.Dialect() == repository.DialectPostgres {
		return postgres.Open(m.config.DSN())
	}
	return sqlite.New(sqlite.Config{
		DriverName: "sqlite",
		DSN:        m.config.DSN(),
	})
}

func (m *Manager) ensureParentDir() error {
	if m.config.Dialect() != repository.DialectSQLite || m.config.IsMemory() {
		return nil
	}
	dir := filepath.Dir(m.config.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Config returns the configuration the manager was created with
func (m *Manager) Config() *Config {
	return m.config
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	m.logger.Info("Closing database connection", map[string]any{"target": m.config.Target()})

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.config.Dialect(), m.config.DetectionMode(), m.logger)
}

// Locker returns the cross-process migration lock suited to the driver
func (m *Manager) Locker() persistence.Locker {
	switch {
	case m.config.IsMemory():
		return NewNoopLocker()
	case m.config.Dialect() == repository.DialectPostgres:
		return NewAdvisoryLocker(m.db, AdvisoryLockKey, m.logger)
	default:
		return NewFileLocker(m.config.LockPath(), m.logger)
	}
}

// HealthChecker returns a health checker over the open connection
func (m *Manager) HealthChecker() *HealthChecker {
	return NewHealthChecker(m.db, m.config, m.errorMapper, m.logger, m.timeProvider)
}

// GetErrorMapper returns the error mapper
func (m *Manager) GetErrorMapper() *ErrorMapper {
	return m.errorMapper
}
