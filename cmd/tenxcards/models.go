package main

import (
	"fmt"

	"github.com/KKuznik/10x-cards/internal/service"
	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the language models offered for generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintln(out, renderModels(service.NewModelCatalog(""), isTerminal(out)))
			return err
		},
	}
}

func renderModels(catalog *service.ModelCatalog, terminal bool) string {
	models := catalog.Models()
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		recommended := ""
		if m.IsRecommended {
			recommended = "yes"
		}
		rows = append(rows, []string{m.ID, m.Name, recommended, m.Description})
	}
	return renderTable(
		[]string{"ID", "Name", "Recommended", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		terminal,
	)
}
