package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"cow-catalog/internal/domain/cows"

	"github.com/spf13/cobra"
)

func listCommand(a *app) *cobra.Command {
	var q, status, pen string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las vacas aplicando los filtros guardados",
		Long:  "Lista las vacas (más recientes primero). --q, --status y --pen pisan los filtros guardados solo para esta ejecución.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.loadErr != nil {
				return fmt.Errorf("failed to load catalog: %w", a.loadErr)
			}

			f := a.svc.Filters()
			if cmd.Flags().Changed("q") {
				f.SearchQuery = q
			}
			if cmd.Flags().Changed("status") {
				f.StatusFilter = status
			}
			if cmd.Flags().Changed("pen") {
				f.PenFilter = pen
			}
			if err := f.Validate(); err != nil {
				return err
			}

			return printCows(cmd.OutOrStdout(), a.svc.FilteredBy(f), time.Now())
		},
	}

	cmd.Flags().StringVar(&q, "q", "", "búsqueda por ear tag")
	cmd.Flags().StringVar(&status, "status", "", "Active, In Treatment, Deceased o all")
	cmd.Flags().StringVar(&pen, "pen", "", "corral exacto")
	return cmd
}

func printCows(out io.Writer, list []cows.Cow, now time.Time) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EAR TAG\tSEX\tPEN\tSTATUS\tWEIGHT\tLAST EVENT\tADG")

	for _, c := range list {
		weight := "-"
		if c.Weight != nil {
			weight = strconv.FormatFloat(*c.Weight, 'f', -1, 64) + " kg"
		}
		adg := "-"
		if g, ok := cows.DailyWeightGain(c); ok {
			adg = strconv.FormatFloat(g, 'f', 2, 64) + " kg/day"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.EarTag, c.Sex, c.Pen, c.Status, weight,
			cows.RelativeDateLabel(cows.LastEventDate(c), now), adg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := cows.CountByStatus(list)
	_, err := fmt.Fprintf(out, "%d cows (Active: %d, In Treatment: %d, Deceased: %d)\n",
		len(list), counts[string(cows.StatusActive)], counts[string(cows.StatusInTreatment)], counts[string(cows.StatusDeceased)])
	return err
}
