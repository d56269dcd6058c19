package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KKuznik/10x-cards/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := openDatabase(runCtx, cfg.Database, logger)
			if err != nil {
				return err
			}

			if migrate {
				if err := postgres.Migrate(runCtx, db, "up", logger); err != nil {
					_ = db.Close()
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
			}

			app, err := newApplication(runCtx, cfg, logger, db)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer app.cleanup()

			return app.startHTTPServer(runCtx, app.setupRouter())
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")
	return cmd
}
