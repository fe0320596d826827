package dto

import "github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/database"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status   string                `json:"status"`
	Database database.HealthReport `json:"database"`
}
