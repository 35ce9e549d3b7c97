package main

import (
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/config"
	"github.com/boddenberg/dashboard-api/internal/infra/observability"
	"github.com/boddenberg/dashboard-api/internal/infra/postgres"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// checkDBCommand connects to PostgreSQL with the configured retries and
// exits non-zero when the database cannot be reached. Used as a container
// readiness check.
func checkDBCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "checkdb",
		Short: "Check that PostgreSQL is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.LogLevel)
			defer logger.Sync() //nolint:errcheck

			pool, err := postgres.NewPool(cmd.Context(), cfg.Database, logger)
			if err != nil {
				logger.Error("database unreachable", zap.Error(err))
				return err
			}
			defer pool.Close()

			store := postgres.NewStore(pool, cfg.Database.QueryTimeout, observability.NewMetrics(), logger)
			if err := store.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database ok")
			return nil
		},
	}
}
