package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/services/alerts"
	"github.com/vsinha/liftplan/pkg/application/services/calendar"
	"github.com/vsinha/liftplan/pkg/application/services/orchestration"
	"github.com/vsinha/liftplan/pkg/application/services/schedule"
	"github.com/vsinha/liftplan/pkg/infrastructure/config"
	"github.com/vsinha/liftplan/pkg/infrastructure/logging"
	"github.com/vsinha/liftplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/liftplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/liftplan/pkg/interfaces/cli/output"
)

// app is the wired runtime of one command invocation
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	location *time.Location
	output   output.Config
}

func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile, opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		location: loc,
		output: output.Config{
			Format:    opts.format,
			OutputDir: opts.outputDir,
			Verbose:   opts.verbose,
			Writer:    cmd.OutOrStdout(),
		},
	}, nil
}

// orchestrator loads the data directory into fresh repositories and wires the services over them
func (a *app) orchestrator(ctx context.Context) (*orchestration.PlanningOrchestrator, error) {
	snapshot, err := csv.NewLoader(logging.Named(a.logger, "csv")).LoadSnapshot(ctx, a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", a.cfg.DataDir, err)
	}

	contractRepo := memory.NewContractRepository(len(snapshot.Contracts))
	if err := contractRepo.LoadContracts(snapshot.Contracts); err != nil {
		return nil, fmt.Errorf("failed to load contracts into repository: %w", err)
	}

	customerRepo := memory.NewCustomerRepository()
	if err := customerRepo.LoadCustomers(snapshot.Customers); err != nil {
		return nil, fmt.Errorf("failed to load customers into repository: %w", err)
	}

	planRepo := memory.NewPlanRepository(len(snapshot.MonthlyPlans))
	if err := planRepo.LoadQuarterlyPlans(snapshot.QuarterlyPlans); err != nil {
		return nil, fmt.Errorf("failed to load quarterly plans into repository: %w", err)
	}
	if err := planRepo.LoadMonthlyPlans(snapshot.MonthlyPlans); err != nil {
		return nil, fmt.Errorf("failed to load monthly plans into repository: %w", err)
	}

	cargoRepo := memory.NewCargoRepository()
	if err := cargoRepo.LoadCargos(snapshot.Cargos); err != nil {
		return nil, fmt.Errorf("failed to load cargos into repository: %w", err)
	}

	return orchestration.NewPlanningOrchestrator(
		schedule.NewBuilder(logging.Named(a.logger, "schedule")),
		calendar.NewDeriver(logging.Named(a.logger, "calendar")),
		alerts.NewBuilder(a.cfg.Digest.HorizonDays, logging.Named(a.logger, "alerts")),
		contractRepo,
		customerRepo,
		planRepo,
		cargoRepo,
		logging.Named(a.logger, "orchestrator"),
	), nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
