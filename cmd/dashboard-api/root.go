package main

import (
	"fmt"

	"github.com/boddenberg/dashboard-api/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCommand builds the CLI. Running it without a subcommand starts the server.
func rootCommand() (*cobra.Command, error) {
	v, err := config.NewViper()
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:          "dashboard-api",
		Short:        "REST API for the customer and calculation dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	// Global flags override environment variables and the config file.
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json, toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("backend", "", "Data backend (postgres, memory)")
	if err := bindFlags(v, rootCmd, map[string]string{
		"config_file":  "config",
		"log_level":    "log-level",
		"data_backend": "backend",
	}); err != nil {
		return nil, err
	}

	serveCmd, err := serveCommand(v)
	if err != nil {
		return nil, err
	}
	rootCmd.AddCommand(serveCmd, checkDBCommand(v))

	return rootCmd, nil
}

// bindFlags binds viper keys to flags declared on cmd.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
