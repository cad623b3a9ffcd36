package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/application/services/combi"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/services"
)

// Builder rolls monthly plans up into per-contract schedule rows for a window
type Builder struct {
	aggregator *combi.Aggregator
	idComp     *services.IDComparator
	logger     *zap.Logger
}

// NewBuilder creates a new schedule builder
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		aggregator: combi.NewAggregator(logger.Named("combi")),
		idComp:     services.NewIDComparator(),
		logger:     logger,
	}
}

// BuildResult builds the schedule rows and the grand total across them
func (b *Builder) BuildResult(snapshot *dto.Snapshot, window entities.Window, productFilter string) *dto.ScheduleResult {
	rows := b.Build(snapshot, window, productFilter)
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total)
	}
	return &dto.ScheduleResult{
		Window:        window,
		ProductFilter: productFilter,
		Rows:          rows,
		GrandTotal:    total,
	}
}

// Build returns one schedule row per contract with anything scheduled in the window.
//
// A contract's monthly plans are reached through its quarterly plans and through direct
// contract links; a plan reachable both ways is counted once. Contracts whose customer is
// missing are skipped, as are plans outside the window's year or months.
func (b *Builder) Build(snapshot *dto.Snapshot, window entities.Window, productFilter string) map[string]entities.ScheduleRow {
	idx := dto.NewIndex(snapshot)
	months := window.Months()
	position := make(map[int]int, len(months))
	for i, m := range months {
		position[m] = i
	}

	qpByContract := make(map[string][]*entities.QuarterlyPlan)
	for _, qp := range snapshot.QuarterlyPlans {
		qpByContract[qp.ContractID] = append(qpByContract[qp.ContractID], qp)
	}

	plansByQP := make(map[string][]*entities.MonthlyPlan)
	directByContract := make(map[string][]*entities.MonthlyPlan)
	for _, mp := range snapshot.MonthlyPlans {
		if _, linked := idx.QuarterlyPlans[mp.QuarterlyPlanID]; linked {
			plansByQP[mp.QuarterlyPlanID] = append(plansByQP[mp.QuarterlyPlanID], mp)
			continue
		}
		if mp.ContractID == "" {
			b.logger.Debug("skip monthly plan with dangling quarterly plan",
				zap.String("monthly_plan_id", mp.ID),
				zap.String("quarterly_plan_id", mp.QuarterlyPlanID))
			continue
		}
		directByContract[mp.ContractID] = append(directByContract[mp.ContractID], mp)
	}

	rows := make(map[string]entities.ScheduleRow)
	for _, contract := range snapshot.Contracts {
		if _, done := rows[contract.ID]; done {
			continue
		}
		customer, ok := idx.Customers[contract.CustomerID]
		if !ok {
			b.logger.Debug("skip contract without customer",
				zap.String("contract_id", contract.ID),
				zap.String("customer_id", contract.CustomerID))
			continue
		}

		candidates := b.collectPlans(contract, qpByContract, plansByQP, directByContract, window.Year)

		var records []combi.Record
		for _, mp := range candidates {
			if _, inWindow := position[mp.Month]; !inWindow {
				continue
			}
			records = append(records, combi.Record{Plan: mp, ProductName: idx.ProductOfPlan(mp)})
		}
		if len(records) == 0 {
			continue
		}

		row := b.buildRow(contract, customer, window, months, position, records, productFilter)
		if row.EntryCount() == 0 && row.Total.IsZero() {
			continue
		}
		rows[contract.ID] = row
	}

	b.logger.Debug("schedule built",
		zap.Stringer("window", window),
		zap.String("product_filter", productFilter),
		zap.Int("rows", len(rows)))

	return rows
}

// collectPlans merges a contract's monthly plans reached via quarterly plans and via the
// direct link, restricted to the window year, without duplicates
func (b *Builder) collectPlans(
	contract *entities.Contract,
	qpByContract map[string][]*entities.QuarterlyPlan,
	plansByQP map[string][]*entities.MonthlyPlan,
	directByContract map[string][]*entities.MonthlyPlan,
	year int,
) []*entities.MonthlyPlan {
	seen := make(map[string]bool)
	var plans []*entities.MonthlyPlan

	add := func(mp *entities.MonthlyPlan) {
		if mp.Year != year || seen[mp.ID] {
			return
		}
		seen[mp.ID] = true
		plans = append(plans, mp)
	}

	for _, qp := range qpByContract[contract.ID] {
		for _, mp := range plansByQP[qp.ID] {
			add(mp)
		}
	}
	for _, mp := range directByContract[contract.ID] {
		add(mp)
	}
	return plans
}

func (b *Builder) buildRow(
	contract *entities.Contract,
	customer *entities.Customer,
	window entities.Window,
	months []int,
	position map[int]int,
	records []combi.Record,
	productFilter string,
) entities.ScheduleRow {
	row := entities.ScheduleRow{
		ContractID:     contract.ID,
		ContractNumber: contract.ContractNumber,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		ContractType:   contract.Type,
		Window:         window,
		Months:         append([]int(nil), months...),
		Buckets:        make([][]entities.ScheduleEntry, len(months)),
		Total:          decimal.Zero,
		TopupTotal:     decimal.Zero,
		QuarterTotals:  make(map[entities.Quarter]entities.Quantity),
	}

	aggregated := b.aggregator.Aggregate(records, productFilter)
	for _, entry := range aggregated.Entries() {
		i, ok := position[entry.Month]
		if !ok {
			continue
		}
		entry.MonthIndex = i
		entry.Laycan = services.ParseLaycan(entry.LaycanText(contract.Type), entry.Month, entry.Year)
		if !entry.Laycan.Valid && entry.LaycanText(contract.Type) != "" {
			b.logger.Debug("unparseable laycan window",
				zap.String("contract_id", contract.ID),
				zap.Strings("monthly_plan_ids", entry.MonthlyPlanIDs),
				zap.String("text", entry.LaycanText(contract.Type)))
		}

		row.Buckets[i] = append(row.Buckets[i], entry)
		row.Total = row.Total.Add(entry.Quantity)
		row.TopupTotal = row.TopupTotal.Add(entry.TopupQuantity)

		q := entities.QuarterOfMonth(entry.Month)
		row.QuarterTotals[q] = row.QuarterTotals[q].Add(entry.Quantity)
	}

	for i := range row.Buckets {
		bucket := row.Buckets[i]
		sort.SliceStable(bucket, func(a, c int) bool {
			return b.idComp.Less(bucket[a].MonthlyPlanIDs[0], bucket[c].MonthlyPlanIDs[0])
		})
	}

	return row
}
