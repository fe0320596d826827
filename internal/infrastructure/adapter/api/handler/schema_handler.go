package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/boardstore/internal/domain/error"
	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
)

// HealthChecker reports database reachability
type HealthChecker interface {
	Check(ctx context.Context) database.HealthReport
}

// SchemaHandler serves the read-only schema status endpoints
type SchemaHandler struct {
	schemaUseCase usecase.SchemaUseCase
	health        HealthChecker
	logger        coreport.Logger
}

// NewSchemaHandler creates a new schema handler instance
func NewSchemaHandler(
	schemaUseCase usecase.SchemaUseCase,
	health HealthChecker,
	logger coreport.Logger,
) *SchemaHandler {
	return &SchemaHandler{
		schemaUseCase: schemaUseCase,
		health:        health,
		logger:        logger,
	}
}

// GetHealth handles the GET /health endpoint
func (h *SchemaHandler) GetHealth(c *gin.Context) {
	report := h.health.Check(c.Request.Context())

	statusCode := http.StatusOK
	if !report.Healthy() {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:   report.Status,
		Database: report,
	})
}

// GetSchema handles the GET /schema endpoint
func (h *SchemaHandler) GetSchema(c *gin.Context) {
	status, err := h.schemaUseCase.Status(c.Request.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMessage := "Internal server error"

		if errors.Is(err, domainerr.ErrConnection) {
			statusCode = http.StatusServiceUnavailable
			errorMessage = "Database unavailable"
		}

		fields := domainerr.LogFields(err)
		fields["path"] = c.Request.URL.Path
		h.logger.Error("Error reading schema status", fields)

		c.JSON(statusCode, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewSchemaStatusResponse(status))
}
