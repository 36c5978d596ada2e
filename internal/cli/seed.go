package cli

import (
	"fmt"

	"cow-catalog/internal/domain/cows"

	"github.com/spf13/cobra"
)

func seedCommand(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Agrega vacas de ejemplo al catálogo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			added, err := a.svc.Seed(cmd.Context(), count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d sample cows have been added!\n", added)
			return err
		},
	}

	cmd.Flags().IntVar(&count, "count", cows.DefaultSampleSize, "cantidad de vacas a generar")
	return cmd
}
