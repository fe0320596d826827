package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var dryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and apply outstanding migrations",
	Long: `Acquire the migration lock, create every missing table at its latest
shape, then apply outstanding migrations in order. Safe to run repeatedly.

With --dry-run nothing is locked or changed; the pending migrations are
printed as JSON instead.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pending migrations without applying them")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if dryRun {
		pending, err := a.migrations.DryRun(cmd.Context())
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(pending)
	}

	return a.migrations.MigrateAll(cmd.Context())
}
