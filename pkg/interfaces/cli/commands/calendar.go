package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

func newCalendarCommand(opts *rootOptions) *cobra.Command {
	flags := &calendarFlags{}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Derive laycan, loading and document deadline events",
		Long: `Derives calendar events from cargos and from monthly plans that have no cargo yet
(shown as TBA): FOB laycans, CIF loading windows and, for CIF cargos, TNG and
five-day notice deadlines, each with an overdue flag and days until start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			calOpts, err := flags.options(a.location, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			orchestrator, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}

			events, err := orchestrator.DeriveCalendar(ctx, calOpts)
			if err != nil {
				return err
			}

			a.logger.Info("calendar derived", zap.Int("events", len(events)))
			return output.WriteCalendar(events, a.output)
		},
	}

	flags.register(cmd, true)
	return cmd
}
