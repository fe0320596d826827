package database

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"gorm.io/gorm"
)

// Health statuses
const (
	HealthStatusUp   = "up"
	HealthStatusDown = "down"
)

const healthPingTimeout = 2 * time.Second

// ConnectionPoolMetrics is a snapshot of the database connection pool
type ConnectionPoolMetrics struct {
	OpenConnections    int   `json:"open_connections"`
	IdleConnections    int   `json:"idle_connections"`
	MaxOpenConnections int   `json:"max_open_connections"`
	InUse              int   `json:"in_use"`
	WaitCount          int64 `json:"wait_count"`
	WaitDurationMs     int64 `json:"wait_duration_ms"`
}

// HealthReport is the result of a health check
type HealthReport struct {
	Status    string                `json:"status"`
	Driver    string                `json:"driver"`
	Target    string                `json:"target"`
	LatencyMs int64                 `json:"latency_ms"`
	Pool      ConnectionPoolMetrics `json:"pool"`
	Error     string                `json:"error,omitempty"`
}

// Healthy reports whether the database answered the ping
func (r HealthReport) Healthy() bool {
	return r.Status == HealthStatusUp
}

// HealthChecker pings the database and reports pool usage
type HealthChecker struct {
	db           *gorm.DB
	config       *Config
	errorMapper  *ErrorMapper
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *gorm.DB, config *Config, errorMapper *ErrorMapper, logger coreport.Logger, timeProvider coreport.TimeProvider) *HealthChecker {
	return &HealthChecker{
		db:           db,
		config:       config,
		errorMapper:  errorMapper,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Check pings the database and collects connection pool metrics
func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status: HealthStatusUp,
		Driver: string(h.config.Dialect()),
		Target: h.config.Target(),
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return h.down(report, err)
	}

	pingCtx, cancel := h.timeProvider.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := h.timeProvider.Now()
	err = sqlDB.PingContext(pingCtx)
	report.LatencyMs = h.timeProvider.Since(start).Milliseconds()

	stats := sqlDB.Stats()
	report.Pool = ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDurationMs:     stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		return h.down(report, err)
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		h.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
		})
	}

	return report
}

func (h *HealthChecker) down(report HealthReport, err error) HealthReport {
	mapped := h.errorMapper.MapError(err, report.Target)
	h.logger.Error("Database health check failed", map[string]any{
		"target": report.Target,
		"error":  mapped.Error(),
	})
	report.Status = HealthStatusDown
	report.Error = mapped.Error()
	return report
}
