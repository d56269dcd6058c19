package main

import (
	"fmt"
	"log/slog"

	"github.com/KKuznik/10x-cards/internal/config"
	"github.com/KKuznik/10x-cards/internal/platform/logger"
	"github.com/spf13/cobra"
)

// commandContext carries the persistent flags and lazily loaded
// configuration shared by subcommands.
type commandContext struct {
	envFile string

	cfg    *config.Config
	logger *slog.Logger
}

func (c *commandContext) ensureConfig() (*config.Config, *slog.Logger, error) {
	if c.cfg != nil {
		return c.cfg, c.logger, nil
	}

	cfg, err := config.LoadWithEnvFile(c.envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	c.cfg = cfg
	c.logger = l
	return cfg, l, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tenxcards",
		Short:         "10xCards flashcard generation API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", config.DefaultEnvFile, "Dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newModelsCommand())

	return rootCmd
}
