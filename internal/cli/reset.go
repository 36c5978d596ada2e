package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func resetCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Borra todas las vacas y los filtros (irreversible)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("this will permanently delete all cow data; re-run with --yes to confirm")
			}
			if err := a.svc.Reset(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "All data has been cleared")
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirmar el borrado")
	return cmd
}
