package main

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/KKuznik/10x-cards/internal/platform/postgres"
	"github.com/spf13/cobra"
)

var migrateCommands = []string{"up", "down", "status", "version", "reset"}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(migrateCommands, "|") + "]",
		Short:     "Run database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]
			if !slices.Contains(migrateCommands, command) {
				return fmt.Errorf("unknown migrate command %q (want one of %s)",
					command, strings.Join(migrateCommands, ", "))
			}

			cfg, logger, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			started := time.Now()
			if err := postgres.Migrate(cmd.Context(), db, command, logger); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, err = fmt.Fprintln(out, renderTable(
				[]string{"Command", "Database", "Table", "Duration"},
				[][]string{{command, databaseLabel(cfg.Database.URL), postgres.MigrationTableName, time.Since(started).Round(time.Millisecond).String()}},
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				isTerminal(out),
			))
			return err
		},
	}
}

// databaseLabel renders host/dbname from a connection URL without
// credentials.
func databaseLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "(unparseable url)"
	}
	return u.Host + u.Path
}
