package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/infrastructure/events"
	"github.com/vsinha/liftplan/pkg/infrastructure/logging"
	"github.com/vsinha/liftplan/pkg/infrastructure/scheduler"
	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	flags := &calendarFlags{}
	var (
		cronExpr string
		runNow   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the alert digest on a cron schedule and report changes",
		Long: `Re-reads the data directory on every tick of the digest schedule, rebuilds the alert
digest and prints the alerts that were raised or cleared since the previous run.
Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			if cronExpr == "" {
				cronExpr = a.cfg.Digest.Cron
			}

			store := events.NewInMemoryEventStore(logging.Named(a.logger, "events"))
			if err := store.Subscribe(events.DigestEventTypes, events.HandlerFunc(func(e events.Event) error {
				return writeDigestEvent(e, a.output)
			})); err != nil {
				return err
			}

			build := func(ctx context.Context) (*dto.AlertDigest, error) {
				calOpts, err := flags.options(a.location, time.Now())
				if err != nil {
					return nil, err
				}
				orchestrator, err := a.orchestrator(ctx)
				if err != nil {
					return nil, err
				}
				return orchestrator.BuildAlertDigest(ctx, calOpts)
			}

			digestScheduler, err := scheduler.NewDigestScheduler(cronExpr, a.location, build, store, logging.Named(a.logger, "scheduler"))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if runNow {
				if err := digestScheduler.RunOnce(ctx); err != nil {
					return err
				}
			}

			digestScheduler.Start()
			<-ctx.Done()
			digestScheduler.Stop()

			a.logger.Info("watch stopped", zap.NamedError("reason", ctx.Err()))
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&cronExpr, "cron", "", "Digest schedule as a cron expression (default from config)")
	cmd.Flags().BoolVar(&runNow, "run-now", true, "Build a digest immediately before the first scheduled run")
	return cmd
}

// writeDigestEvent prints one digest store event
func writeDigestEvent(e events.Event, config output.Config) error {
	switch data := e.Data().(type) {
	case events.AlertRaised:
		return output.WriteAlertChange(output.ChangeRaised, data.Alert, config)
	case events.AlertCleared:
		return output.WriteAlertChange(output.ChangeCleared, data.Alert, config)
	case events.DigestBuilt:
		if !config.Verbose || config.Writer == nil {
			return nil
		}
		_, err := fmt.Fprintf(config.Writer, "🔄 Digest at %s: %d alerts\n",
			data.GeneratedAt.Format("2006-01-02 15:04"), data.Alerts)
		return err
	default:
		return fmt.Errorf("unexpected event data %T", data)
	}
}
