package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nucleus/catalog-api/graph"
	"github.com/nucleus/catalog-api/internal/config"
	"github.com/nucleus/catalog-api/internal/logging"
	"github.com/nucleus/catalog-api/internal/server"
)

func rootCmd() *cobra.Command {
	return newRootCmd(runServe)
}

// newRootCmd builds the command tree; serve hands the loaded configuration to run.
func newRootCmd(run func(ctx context.Context, cfg *config.Config) error) *cobra.Command {
	conf := config.New()

	root := &cobra.Command{
		Use:   "catalog-api",
		Short: "GraphQL gateway over the catalog REST API",
		Long: `
catalog-api exposes tracks, authors and modules as a GraphQL schema and
resolves every field by calling the catalog REST API.
`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "",
		"Configuration file. Overridden by environment variables and flags.")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the GraphQL HTTP server",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(cmd, conf)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(conf)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	if err := config.RegisterFlags(conf, serve.Flags()); err != nil {
		panic(err)
	}

	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return graph.FormatSchema(cmd.OutOrStdout())
		},
	}

	root.AddCommand(serve, schema)
	return root
}

func readConfigFile(cmd *cobra.Command, conf *viper.Viper) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return err
	}
	conf.SetConfigFile(path)
	if err := conf.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to build server", zap.Error(err))
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
