// Package main provides the boardstore CLI: it migrates a board database to
// the latest schema, reports its status and serves a read-only status API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	domainerr "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/config"
)

// Global flags
var (
	dbPath    string
	dbDriver  string
	detection string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "boardstore",
	Short: "Manage the schema of a board database",
	Long: `boardstore brings a board database (groups, workspaces, objects) to the
latest schema. New databases are created at full shape; older ones are
upgraded in place by additive migrations, guarded by a cross-process lock.

Examples:
  boardstore migrate --db ./data/boards.db   # Create or upgrade the schema
  boardstore migrate --dry-run               # List pending migrations
  boardstore status                          # Print schema status as JSON
  boardstore serve                           # Migrate, then serve /health and /schema`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides database.path)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Database driver: sqlite or postgres (overrides database.driver)")
	rootCmd.PersistentFlags().StringVar(&detection, "detection", "", "Migration detection mode: history or probe (overrides database.detection)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides logger.level)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error [%d]: %v\n", domainerr.ErrorCode(err), err)
		os.Exit(1)
	}
}

// app holds the wiring shared by every subcommand
type app struct {
	config       *config.Config
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	db           *database.Manager
	migrations   *migration.MigrationManager
}

// newApp loads configuration, applies flag overrides and connects
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(config.NewLoader())
	if err != nil {
		return nil, err
	}

	appLogger := logger.NewZapLogger(cfg.Logger.IsProduction())
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))

	tp := timeprovider.NewRealTimeProvider()

	dbManager := database.NewManager(&cfg.Database, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		_ = appLogger.Flush()
		return nil, err
	}

	return &app{
		config:       cfg,
		logger:       appLogger,
		timeProvider: tp,
		db:           dbManager,
		migrations:   migration.NewMigrationManager(dbManager, appLogger, tp),
	}, nil
}

// loadConfig reads file and environment configuration, applies flag
// overrides and validates the result once
func loadConfig(loader *config.Loader) (*config.Config, error) {
	cfg, err := loader.Read()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if dbDriver != "" {
		cfg.Database.Driver = dbDriver
	}
	if detection != "" {
		cfg.Database.Detection = detection
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("Failed to close database", map[string]any{"error": err.Error()})
	}
	_ = a.logger.Flush()
}
