package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"
	timeprovider "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/time"
	mockcore "github.com/amirhossein-jamali/boardstore/mocks/port/core"
	mockusecase "github.com/amirhossein-jamali/boardstore/mocks/port/usecase"
)

type upHealth struct{}

func (upHealth) Check(context.Context) database.HealthReport {
	return database.HealthReport{Status: database.HealthStatusUp}
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := mockcore.NewPermissiveLogger(t)
	schemaHandler := handler.NewSchemaHandler(mockusecase.NewMockSchemaUseCase(t), upHealth{}, logger)

	router := NewRouter(schemaHandler, logger, timeprovider.NewRealTimeProvider())

	t.Run("Health", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/groups/g1", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.JSONEq(t, `{"code":404,"message":"Route not found"}`, recorder.Body.String())
	})
}
