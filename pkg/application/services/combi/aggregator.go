package combi

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/services"
)

// Record is a monthly plan together with its resolved product name
type Record struct {
	Plan        *entities.MonthlyPlan
	ProductName string
}

// Group is one consolidated combi group
type Group struct {
	ID      string
	Members []Record

	// Entry is the consolidated schedule line. Under a product filter its quantity and
	// top-up are narrowed to the matching members.
	Entry entities.ScheduleEntry

	// Unfiltered totals across every member
	TotalQuantity entities.Quantity
	TotalTopup    entities.Quantity
}

// Result holds the consolidated groups and the standalone records
type Result struct {
	CombiGroups map[string]*Group
	Standalone  []Record

	groupOrder []string
}

// GroupIDs returns the group ids in deterministic order
func (r *Result) GroupIDs() []string {
	return append([]string(nil), r.groupOrder...)
}

// Entries returns every schedule line: consolidated groups first, then standalone records
// as their own non-combi entries
func (r *Result) Entries() []entities.ScheduleEntry {
	entries := make([]entities.ScheduleEntry, 0, len(r.groupOrder)+len(r.Standalone))
	for _, id := range r.groupOrder {
		entries = append(entries, r.CombiGroups[id].Entry)
	}
	for _, rec := range r.Standalone {
		entries = append(entries, standaloneEntry(rec))
	}
	return entries
}

// Total returns the displayed quantity summed over all entries
func (r *Result) Total() entities.Quantity {
	total := decimal.Zero
	for _, e := range r.Entries() {
		total = total.Add(e.Quantity)
	}
	return total
}

// Aggregator consolidates monthly plans sharing a combi group id into single schedule lines
type Aggregator struct {
	idComp *services.IDComparator
	logger *zap.Logger
}

// NewAggregator creates a new combi-group aggregator
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		idComp: services.NewIDComparator(),
		logger: logger,
	}
}

// Aggregate partitions records by combi group id and consolidates each group.
//
// Members are ordered by record id and the lowest id supplies the representative month,
// year and date-window fields, so the result does not depend on input order. With a
// non-empty productFilter, standalone records outside the category are dropped and a group
// is kept only when at least one member matches.
func (a *Aggregator) Aggregate(records []Record, productFilter string) *Result {
	sorted := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Plan == nil {
			continue
		}
		sorted = append(sorted, rec)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return a.idComp.Less(sorted[i].Plan.ID, sorted[j].Plan.ID)
	})

	result := &Result{
		CombiGroups: make(map[string]*Group),
	}
	members := make(map[string][]Record)
	var order []string

	for _, rec := range sorted {
		if !rec.Plan.HasCombiGroup() {
			if !services.ProductMatches(rec.ProductName, productFilter) {
				continue
			}
			result.Standalone = append(result.Standalone, rec)
			continue
		}
		id := rec.Plan.CombiGroupID
		if _, seen := members[id]; !seen {
			order = append(order, id)
		}
		members[id] = append(members[id], rec)
	}

	for _, id := range order {
		group, ok := a.consolidate(id, members[id], productFilter)
		if !ok {
			a.logger.Debug("combi group hidden by product filter",
				zap.String("combi_group_id", id),
				zap.String("product_filter", productFilter))
			continue
		}
		result.CombiGroups[id] = group
		result.groupOrder = append(result.groupOrder, id)
	}

	return result
}

// consolidate builds the consolidated entry for one group; members arrive sorted by id
func (a *Aggregator) consolidate(id string, members []Record, productFilter string) (*Group, bool) {
	group := &Group{
		ID:            id,
		Members:       members,
		TotalQuantity: decimal.Zero,
		TotalTopup:    decimal.Zero,
	}

	shownQty := decimal.Zero
	shownTopup := decimal.Zero
	var shownNames []string
	matched := 0

	products := make([]entities.CombiProduct, 0, len(members))
	planIDs := make([]string, 0, len(members))

	for _, m := range members {
		group.TotalQuantity = group.TotalQuantity.Add(m.Plan.Quantity)
		group.TotalTopup = group.TotalTopup.Add(m.Plan.TopupQuantity)
		products = append(products, entities.CombiProduct{
			MonthlyPlanID: m.Plan.ID,
			ProductName:   m.ProductName,
			Quantity:      m.Plan.Quantity,
			TopupQuantity: m.Plan.TopupQuantity,
		})
		planIDs = append(planIDs, m.Plan.ID)

		if services.ProductMatches(m.ProductName, productFilter) {
			matched++
			shownQty = shownQty.Add(m.Plan.Quantity)
			shownTopup = shownTopup.Add(m.Plan.TopupQuantity)
			shownNames = append(shownNames, m.ProductName)
		}
	}

	if matched == 0 {
		return nil, false
	}

	rep := members[0].Plan
	entry := entryFromPlan(rep)
	entry.ProductName = strings.Join(shownNames, " + ")
	entry.Quantity = shownQty
	entry.TopupQuantity = shownTopup
	entry.IsCombi = true
	entry.CombiGroupID = id
	entry.CombiProducts = products
	entry.MonthlyPlanIDs = planIDs
	group.Entry = entry

	return group, true
}

func standaloneEntry(rec Record) entities.ScheduleEntry {
	entry := entryFromPlan(rec.Plan)
	entry.ProductName = rec.ProductName
	entry.Quantity = rec.Plan.Quantity
	entry.TopupQuantity = rec.Plan.TopupQuantity
	entry.MonthlyPlanIDs = []string{rec.Plan.ID}
	return entry
}

// entryFromPlan copies the period and date-window fields of a plan
func entryFromPlan(p *entities.MonthlyPlan) entities.ScheduleEntry {
	return entities.ScheduleEntry{
		Month:          p.Month,
		Year:           p.Year,
		Laycan5Days:    p.Laycan5Days,
		Laycan2Days:    p.Laycan2Days,
		LoadingWindow:  p.LoadingWindow,
		LoadingMonth:   p.LoadingMonth,
		DeliveryWindow: p.DeliveryWindow,
		DeliveryMonth:  p.DeliveryMonth,
	}
}
