package commands

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/todolist/todolist/pkg/config"
	"github.com/todolist/todolist/pkg/server"
	"github.com/todolist/todolist/pkg/telemetry"
)

func newServeCommand() *cobra.Command {
	var (
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list over HTTP",
		Long: `Serve the list as a JSON API until interrupted.

Routes:
  GET    /health       database reachability
  GET    /items        every item
  GET    /items/{id}   a single item
  POST   /items        add an item ({"description": "..."})
  DELETE /items        delete every item
  GET    /metrics      Prometheus metrics (when enabled)

When a config file is in use, edits to its log level take effect without
a restart.`,
		Example: `  todo serve
  todo serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			opts := []server.Option{
				server.WithHealthChecker(a.db),
				server.WithLogger(a.tel.Logger.NewComponentLogger("server").Zerolog()),
			}
			if a.cfg.Telemetry.MetricsEnabled {
				opts = append(opts, server.WithMetricsHandler(a.tel.Metrics.Handler()))
			}

			if a.path != "" {
				watcher := config.NewWatcher(a.path, a.tel.Logger.Zerolog())
				if err := watcher.Watch(ctx, applyReload); err != nil {
					log.Warn().Err(err).Msg("Config reload disabled")
				}
			}

			return server.New(a.items, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

// applyReload applies the parts of a reloaded config that can change at runtime.
func applyReload(cfg *config.Config) {
	if verbose {
		return
	}
	level := telemetry.ParseLevel(cfg.Telemetry.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Info().Str("level", level.String()).Msg("Applied reloaded log level")
}
