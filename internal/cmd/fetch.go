package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vnykmshr/shellkit/internal/observability"
	"github.com/vnykmshr/shellkit/internal/output"
	"github.com/vnykmshr/shellkit/pkg/loader"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		outputFormat string
		savePath     string
		invalidate   bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Load the configured resource and describe it",
		Long: `Load the configured resource through the shared loader, consulting the
Redis cache first when enabled, and print a summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			rt, err := buildRuntime(a.config)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if invalidate {
				if err := rt.loader.Invalidate(ctx); err != nil {
					observability.CLILogger.Warn("cache invalidation failed", zap.Error(err))
				}
			}

			res, err := loader.Load(ctx)
			if err != nil {
				return err
			}

			if savePath != "" {
				if err := os.WriteFile(savePath, res.Body, 0o644); err != nil {
					return fmt.Errorf("failed to save resource: %w", err)
				}
				observability.CLILogger.Info("resource saved", zap.String("path", savePath))
			}
			return output.WriteResource(cmd.OutOrStdout(), f, res)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&savePath, "save", "", "write the resource body to this file")
	cmd.Flags().BoolVar(&invalidate, "invalidate", false, "drop the cached copy before loading")
	cmd.Flags().String("key", "", "API key (overrides loader.key)")
	cmd.Flags().String("base-url", "", "resource base URL (overrides loader.base_url)")
	bindFlag(cmd, "key", "loader.key")
	bindFlag(cmd, "base-url", "loader.base_url")
	return cmd
}
