package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/dto"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the schema status as JSON",
	Long: `Print the applied migration history, pending migrations and the live
columns of every table. Nothing is changed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	status, err := a.migrations.Status(cmd.Context())
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto.NewSchemaStatusResponse(status))
}
