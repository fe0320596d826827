package dto

import (
	"time"

	"github.com/amirhossein-jamali/boardstore/internal/domain/entity"
)

// AppliedMigrationResponse is a row of the migration history
type AppliedMigrationResponse struct {
	Version     int64  `json:"version"`
	Description string `json:"description"`
	AppliedAt   string `json:"applied_at"`
}

// TableResponse is the live state of one application table
type TableResponse struct {
	Name    string   `json:"name"`
	Exists  bool     `json:"exists"`
	Columns []string `json:"columns"`
	Missing []string `json:"missing"`
}

// SchemaStatusResponse is returned by GET /schema
type SchemaStatusResponse struct {
	Version   int64                      `json:"version"`
	Detection string                     `json:"detection"`
	UpToDate  bool                       `json:"up_to_date"`
	Applied   []AppliedMigrationResponse `json:"applied"`
	Pending   []entity.MigrationSummary  `json:"pending"`
	Tables    []TableResponse            `json:"tables"`
}

// NewSchemaStatusResponse flattens a schema status for the wire
func NewSchemaStatusResponse(status *entity.SchemaStatus) SchemaStatusResponse {
	resp := SchemaStatusResponse{
		Version:   status.Version,
		Detection: status.Detection,
		UpToDate:  status.UpToDate(),
		Applied:   make([]AppliedMigrationResponse, 0, len(status.Applied)),
		Pending:   status.Pending,
		Tables:    make([]TableResponse, 0, len(status.Tables)),
	}
	if resp.Pending == nil {
		resp.Pending = []entity.MigrationSummary{}
	}

	for _, a := range status.Applied {
		resp.Applied = append(resp.Applied, AppliedMigrationResponse{
			Version:     a.Version,
			Description: a.Description,
			AppliedAt:   a.AppliedAt.UTC().Format(time.RFC3339),
		})
	}

	for _, t := range status.Tables {
		table := TableResponse{
			Name:    t.Name,
			Exists:  t.Exists,
			Columns: entity.ColumnNames(t.Columns),
			Missing: t.Missing,
		}
		if table.Missing == nil {
			table.Missing = []string{}
		}
		resp.Tables = append(resp.Tables, table)
	}
	return resp
}
