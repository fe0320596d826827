package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/boardstore/internal/domain/port/core"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, schemaHandler *handler.SchemaHandler) {
	router.GET("/health", schemaHandler.GetHealth)
	router.GET("/schema", schemaHandler.GetSchema)
	router.NoRoute(middleware.NotFound())
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
}

// NewRouter builds a gin engine with the middlewares and routes installed
func NewRouter(schemaHandler *handler.SchemaHandler, logger coreport.Logger, timeProvider coreport.TimeProvider) *gin.Engine {
	router := gin.New()
	SetupMiddlewares(router, logger, timeProvider)
	SetupRoutes(router, schemaHandler)
	return router
}
