package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/internal/observability"
	"github.com/vnykmshr/shellkit/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var warm bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resource over HTTP",
		Long: `Serve the configured resource at /resource, loading it once on first
request (or at startup with --warm). Health is reported at /health and, when
metrics are enabled, Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(a.config)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := observability.CLILogger
			if warm {
				if _, err := rt.loader.Load(ctx); err != nil {
					logger.Warn("warm load failed", zap.Error(err))
				}
			}

			opts := server.Options{
				Addr:         a.config.Server.Addr,
				ReadTimeout:  a.config.Server.ReadTimeout,
				WriteTimeout: a.config.Server.WriteTimeout,
				Logger:       logger,
				Version:      versionInfo.Version,
				RateLimit:    a.config.Server.RateLimit,
				Burst:        a.config.Server.Burst,
			}
			if rt.registry != nil {
				rt.registry.MustRegister(prometheus.NewGoCollector())
				opts.Gatherer = rt.registry
			}
			srv := server.New(rt.loader, opts)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().BoolVar(&warm, "warm", false, "load the resource before accepting requests")
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().String("key", "", "API key (overrides loader.key)")
	bindFlag(cmd, "addr", "server.addr")
	bindFlag(cmd, "key", "loader.key")
	return cmd
}
