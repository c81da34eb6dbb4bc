package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/hpcalc/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparator as a JSON HTTP API",
		Long: `Serve the comparator over HTTP. Every request starts from the built-in
defaults; --config, --set and HPCALC_* variables do not apply to the API.

Endpoints:
  GET  /healthz
  GET  /api/v1/defaults
  GET  /api/v1/templates
  POST /api/v1/calculate
  POST /api/v1/compare
  POST /api/v1/break-even
  POST /api/v1/project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.debug, zapcore.InfoLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if addr == "" {
				addr = os.Getenv("HPCALC_HTTP_ADDR")
			}
			if addr == "" {
				addr = ":8080"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := server.NewServer(log).ListenAndServe(ctx, addr); err != nil {
				log.Error("server error", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $HPCALC_HTTP_ADDR or :8080)")
	return cmd
}
