package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/boardstore/internal/infrastructure/adapter/api/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database, then serve the status API",
	Long: `Bootstrap the schema and, once it is up to date, serve:
  GET /health   database reachability and pool usage
  GET /schema   schema status

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.migrations.MigrateAll(ctx); err != nil {
		return err
	}

	gin.SetMode(a.config.Server.Mode)

	schemaHandler := handler.NewSchemaHandler(a.migrations.SchemaUseCase(), a.db.HealthChecker(), a.logger)
	router := routes.NewRouter(schemaHandler, a.logger, a.timeProvider)

	server := &http.Server{
		Addr:              a.config.Server.Address(),
		Handler:           router,
		ReadTimeout:       a.config.Server.ReadTimeout,
		WriteTimeout:      a.config.Server.WriteTimeout,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
		IdleTimeout:       a.config.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", map[string]any{
			"address": server.Addr,
			"env":     a.config.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	a.logger.Info("Server exited gracefully", nil)
	return nil
}
