package orchestration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/application/services/alerts"
	"github.com/vsinha/liftplan/pkg/application/services/calendar"
	"github.com/vsinha/liftplan/pkg/application/services/schedule"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/repositories"
)

// PlanningOrchestrator reads the repositories into a snapshot and runs the schedule builder,
// calendar deriver and alert digest over it
type PlanningOrchestrator struct {
	scheduleBuilder *schedule.Builder
	deriver         *calendar.Deriver
	digestBuilder   *alerts.Builder
	contractRepo    repositories.ContractRepository
	customerRepo    repositories.CustomerRepository
	planRepo        repositories.PlanRepository
	cargoRepo       repositories.CargoRepository
	logger          *zap.Logger
}

// NewPlanningOrchestrator creates a new planning orchestrator
func NewPlanningOrchestrator(
	scheduleBuilder *schedule.Builder,
	deriver *calendar.Deriver,
	digestBuilder *alerts.Builder,
	contractRepo repositories.ContractRepository,
	customerRepo repositories.CustomerRepository,
	planRepo repositories.PlanRepository,
	cargoRepo repositories.CargoRepository,
	logger *zap.Logger,
) *PlanningOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningOrchestrator{
		scheduleBuilder: scheduleBuilder,
		deriver:         deriver,
		digestBuilder:   digestBuilder,
		contractRepo:    contractRepo,
		customerRepo:    customerRepo,
		planRepo:        planRepo,
		cargoRepo:       cargoRepo,
		logger:          logger,
	}
}

// PlanningResult contains the schedule, the calendar and the alert digest of one run
type PlanningResult struct {
	Schedule     *dto.ScheduleResult
	Events       []entities.CalendarEvent
	Digest       *dto.AlertDigest
	PlanningDate time.Time
}

// LoadSnapshot reads every repository collection into one snapshot
func (po *PlanningOrchestrator) LoadSnapshot(ctx context.Context) (*dto.Snapshot, error) {
	snapshot := &dto.Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		contracts, err := po.contractRepo.GetAllContracts()
		if err != nil {
			return fmt.Errorf("failed to read contracts: %w", err)
		}
		snapshot.Contracts = contracts
		return ctx.Err()
	})
	g.Go(func() error {
		customers, err := po.customerRepo.GetAllCustomers()
		if err != nil {
			return fmt.Errorf("failed to read customers: %w", err)
		}
		snapshot.Customers = customers
		return ctx.Err()
	})
	g.Go(func() error {
		quarterly, err := po.planRepo.GetAllQuarterlyPlans()
		if err != nil {
			return fmt.Errorf("failed to read quarterly plans: %w", err)
		}
		snapshot.QuarterlyPlans = quarterly
		return ctx.Err()
	})
	g.Go(func() error {
		monthly, err := po.planRepo.GetAllMonthlyPlans()
		if err != nil {
			return fmt.Errorf("failed to read monthly plans: %w", err)
		}
		snapshot.MonthlyPlans = monthly
		return ctx.Err()
	})
	g.Go(func() error {
		cargos, err := po.cargoRepo.GetAllCargos()
		if err != nil {
			return fmt.Errorf("failed to read cargos: %w", err)
		}
		snapshot.Cargos = cargos
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	po.logger.Debug("snapshot loaded",
		zap.Int("contracts", len(snapshot.Contracts)),
		zap.Int("customers", len(snapshot.Customers)),
		zap.Int("quarterly_plans", len(snapshot.QuarterlyPlans)),
		zap.Int("monthly_plans", len(snapshot.MonthlyPlans)),
		zap.Int("cargos", len(snapshot.Cargos)))

	return snapshot, nil
}

// BuildSchedule builds the per-contract schedule for a window
func (po *PlanningOrchestrator) BuildSchedule(
	ctx context.Context,
	window entities.Window,
	productFilter string,
) (*dto.ScheduleResult, error) {
	snapshot, err := po.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for schedule: %w", err)
	}
	return po.scheduleBuilder.BuildResult(snapshot, window, productFilter), nil
}

// DeriveCalendar derives the filtered calendar events
func (po *PlanningOrchestrator) DeriveCalendar(
	ctx context.Context,
	opts dto.CalendarOptions,
) ([]entities.CalendarEvent, error) {
	snapshot, err := po.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for calendar: %w", err)
	}
	return po.deriver.Derive(snapshot, opts), nil
}

// BuildAlertDigest derives the calendar and collects its actionable events
func (po *PlanningOrchestrator) BuildAlertDigest(
	ctx context.Context,
	opts dto.CalendarOptions,
) (*dto.AlertDigest, error) {
	events, err := po.DeriveCalendar(ctx, opts)
	if err != nil {
		return nil, err
	}
	return po.digestBuilder.Build(events, generatedAt(opts)), nil
}

// RunCompletePlanning builds the schedule, calendar and digest from a single snapshot
func (po *PlanningOrchestrator) RunCompletePlanning(
	ctx context.Context,
	window entities.Window,
	productFilter string,
	opts dto.CalendarOptions,
) (*PlanningResult, error) {
	snapshot, err := po.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for planning: %w", err)
	}

	events := po.deriver.Derive(snapshot, opts)
	return &PlanningResult{
		Schedule:     po.scheduleBuilder.BuildResult(snapshot, window, productFilter),
		Events:       events,
		Digest:       po.digestBuilder.Build(events, generatedAt(opts)),
		PlanningDate: generatedAt(opts),
	}, nil
}

// GetSummary returns a formatted summary of the planning results
func (result *PlanningResult) GetSummary() string {
	overdue := 0
	tba := 0
	for _, e := range result.Events {
		if e.IsOverdue {
			overdue++
		}
		if e.IsTBA {
			tba++
		}
	}

	summary := fmt.Sprintf("Planning Summary (%s):\n", result.Schedule.Window)
	summary += fmt.Sprintf("  Schedule: %d contracts, %s total\n",
		len(result.Schedule.Rows),
		result.Schedule.GrandTotal.String())
	summary += fmt.Sprintf("  Calendar: %d events, %d overdue, %d TBA\n", len(result.Events), overdue, tba)
	summary += fmt.Sprintf("  Alerts: %d critical, %d warning, %d info",
		result.Digest.Counts[entities.SeverityCritical],
		result.Digest.Counts[entities.SeverityWarning],
		result.Digest.Counts[entities.SeverityInfo])
	return summary
}

func generatedAt(opts dto.CalendarOptions) time.Time {
	if opts.Today.IsZero() {
		return time.Now()
	}
	return opts.Today
}
