package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvasset/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve datasets over HTTP",
	Long: `Run the dataset API on SERVER_HOST:SERVER_PORT.

Routes:
  GET  /health
  GET  /api/datasets/{name}       parsed table as JSON
  GET  /api/datasets/{name}/raw   resolved text
  POST /api/parse                 parse the request body`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := newLoader(ctx)
	if err != nil {
		return err
	}

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"data_dir", cfg.Source.DataDir,
		"remote", cfg.Source.RemoteEnabled(),
		"auth_required", cfg.Security.RequireAPIKey,
	)

	server := web.NewServer(loader, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
