package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

func newScheduleCommand(opts *rootOptions) *cobra.Command {
	var (
		year    int
		quarter string
		product string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build the per-contract lifting schedule for a year or quarter",
		Long: `Groups monthly plans per contract into month buckets for the requested window,
consolidates combi cargos into one entry, parses laycan and loading windows and
totals quantities per contract and quarter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := entities.ParseQuarter(quarter)
			if err != nil {
				return err
			}
			if year <= 0 {
				return fmt.Errorf("invalid --year %d", year)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			orchestrator, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}

			window := entities.Window{Year: year, Quarter: q}
			result, err := orchestrator.BuildSchedule(ctx, window, product)
			if err != nil {
				return err
			}

			a.logger.Info("schedule built",
				zap.Stringer("window", window),
				zap.Int("contracts", len(result.Rows)),
				zap.String("total", result.GrandTotal.String()))

			return output.WriteSchedule(result, a.output)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Calendar year of the schedule")
	cmd.Flags().StringVarP(&quarter, "quarter", "q", string(entities.AllQuarter), "Quarter: Q1, Q2, Q3, Q4 or ALL")
	cmd.Flags().StringVarP(&product, "product", "p", "", "Only plans whose product matches (gasoil, jet, diesel, ... or an exact name)")

	return cmd
}
