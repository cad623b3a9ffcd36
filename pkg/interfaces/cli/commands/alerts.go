package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

func newAlertsCommand(opts *rootOptions) *cobra.Command {
	flags := &calendarFlags{}
	var horizon int

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Print the alert digest of overdue and upcoming events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if cmd.Flags().Changed("horizon") {
				if horizon < 0 {
					return fmt.Errorf("invalid --horizon %d", horizon)
				}
				a.cfg.Digest.HorizonDays = horizon
			}

			calOpts, err := flags.options(a.location, time.Now())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			orchestrator, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}

			digest, err := orchestrator.BuildAlertDigest(ctx, calOpts)
			if err != nil {
				return err
			}

			a.logger.Info("alert digest built",
				zap.Int("alerts", len(digest.Alerts)),
				zap.Int("critical", digest.Counts[entities.SeverityCritical]))

			return output.WriteDigest(digest, a.output)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Drop upcoming alerts further out than this many days (0 = no limit; default from config)")
	return cmd
}
