package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/whatsmygrade/core"
	"github.com/huangsam/whatsmygrade/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP.",
	Long: `Start an HTTP server with the following routes:

  POST /v1/solve   grade file text (or {"content": "..."}) -> JSON result
  POST /v1/eval    {"expression": "..."} -> {"expression": "...", "value": n}
  GET  /healthz    liveness check

Examples:
  whatsmygrade serve --addr :9090
  curl --data-binary @course.grades localhost:9090/v1/solve`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg.Addr, logger)
	},
}

func serve(ctx context.Context, addr string, logger *slog.Logger) error {
	router := api.NewRouter(core.NewService(logger), logger)
	return api.Serve(ctx, addr, router, logger)
}
