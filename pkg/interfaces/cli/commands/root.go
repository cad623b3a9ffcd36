package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile string
	envFile    string
	dataDir    string
	logLevel   string
	format     string
	outputDir  string
	verbose    bool
}

// NewRootCommand builds the liftplan command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "liftplan",
		Short: "Lifting schedules, cargo calendars and due-date alerts for term supply contracts",
		Long: `liftplan reads contracts, quarterly and monthly plans and cargos from a directory of
CSV files and derives the per-contract lifting schedule, the calendar of laycan, loading
and document deadlines, and a severity-ordered alert digest.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return output.ValidateFormat(opts.format)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to the YAML config file (default ./liftplan.yaml when present)")
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file with LIFTPLAN_* overrides")
	flags.StringVarP(&opts.dataDir, "data-dir", "d", "", "Directory containing the snapshot CSV files")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&opts.format, "format", "f", output.FormatText, "Output format: text, json, csv")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Directory to save results to instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newScheduleCommand(opts),
		newCalendarCommand(opts),
		newAlertsCommand(opts),
		newWatchCommand(opts),
		newGenerateCommand(opts),
	)

	return rootCmd
}

// Execute runs the command tree with the given context and arguments
func Execute(ctx context.Context, args []string) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
