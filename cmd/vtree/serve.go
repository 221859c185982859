package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the playground server",
		Long: `Start the playground server.

Routes:
  POST /render   render a posted document
  GET  /live     websocket; each message is a document reconciled
                 against the previous one
  GET  /metrics  Prometheus metrics (when metrics are enabled)
  GET  /healthz  health check

Examples:
  vtree serve
  vtree serve --port=8080 --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			if host != "" {
				a.cfg.Server.Host = host
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			s := server.New(&server.ServerConfig{
				Address:                a.cfg.Address(),
				MaxDocumentBytes:       a.cfg.Server.MaxDocumentBytes,
				Namespace:              a.cfg.Metrics.Namespace,
				DisableMetricsEndpoint: !a.cfg.Metrics.Enabled,
				TracerName:             a.cfg.Tracing.TracerName,
				TracerProvider:         a.tracerProvider(),
				Logger:                 a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from vtree.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from vtree.json)")

	return cmd
}
