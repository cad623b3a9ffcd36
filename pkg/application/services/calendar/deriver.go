package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/services"
)

// eventNamespace scopes the name-based event ids
var eventNamespace = uuid.MustParse("6f1d0c3e-8b2a-5d47-9e61-2c4b7a9f0e15")

// Deriver turns cargos and unassigned monthly plans into dated calendar events
type Deriver struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewDeriver creates a new calendar event deriver
func NewDeriver(logger *zap.Logger) *Deriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deriver{
		logger: logger,
		now:    time.Now,
	}
}

// EventID returns the stable id of an event derived from a source record
func EventID(kind entities.EventKind, source string) string {
	return uuid.NewSHA1(eventNamespace, []byte(string(kind)+"|"+source)).String()
}

// derivation carries the per-call state of one Derive
type derivation struct {
	idx      *dto.Index
	today    time.Time
	fallback entities.Period
}

// Derive emits calendar events for the snapshot, filtered by opts.Filters and ordered by
// start date then id.
//
// Each cargo with a laycan window yields a laycan (FOB) or loading-window (CIF) event, and CIF
// cargos may add TNG and five-day-notice events. Monthly plans no cargo references yield TBA
// events from their own date window. Records whose window cannot be parsed emit nothing.
func (d *Deriver) Derive(snapshot *dto.Snapshot, opts dto.CalendarOptions) []entities.CalendarEvent {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	ref := opts.Today
	if ref.IsZero() {
		ref = d.now()
	}

	run := &derivation{
		idx:      dto.NewIndex(snapshot),
		today:    services.DateOnly(ref, loc),
		fallback: opts.FallbackPeriod,
	}
	if run.fallback.IsZero() {
		run.fallback = entities.Period{Month: int(run.today.Month()), Year: run.today.Year()}
	}

	var events []entities.CalendarEvent
	referenced := make(map[string]bool)

	for _, cargo := range snapshot.Cargos {
		if cargo.MonthlyPlanID != "" {
			referenced[cargo.MonthlyPlanID] = true
		}
		events = append(events, d.cargoEvents(run, cargo)...)
	}

	for _, mp := range snapshot.MonthlyPlans {
		if referenced[mp.ID] {
			continue
		}
		if event, ok := d.planEvent(run, mp); ok {
			events = append(events, event)
		}
	}

	filtered := events[:0]
	for _, e := range events {
		if opts.Filters.Matches(e) {
			filtered = append(filtered, e)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].Start.Equal(filtered[j].Start) {
			return filtered[i].Start.Before(filtered[j].Start)
		}
		return filtered[i].ID < filtered[j].ID
	})

	d.logger.Debug("calendar derived",
		zap.Time("today", run.today),
		zap.Int("events", len(events)),
		zap.Int("after_filters", len(filtered)))

	return filtered
}

// cargoEvents derives the window event of a cargo plus its CIF document deadlines
func (d *Deriver) cargoEvents(run *derivation, cargo *entities.Cargo) []entities.CalendarEvent {
	text := strings.TrimSpace(cargo.LaycanWindow)
	if text == "" {
		return nil
	}

	mp, hasPlan := run.idx.MonthlyPlans[cargo.MonthlyPlanID]
	contract, ok := run.idx.Contracts[cargo.ContractID]
	if !ok && hasPlan {
		contract, ok = run.idx.ContractOfPlan(mp)
	}
	if !ok {
		d.logger.Debug("skip cargo without contract",
			zap.String("cargo_id", cargo.ID),
			zap.String("contract_id", cargo.ContractID))
		return nil
	}

	period, source := run.fallback, entities.PeriodFallback
	if hasPlan {
		period, source = mp.Period(), entities.PeriodFromPlan
	} else {
		d.logger.Debug("cargo without monthly plan, using fallback period",
			zap.String("cargo_id", cargo.ID),
			zap.String("monthly_plan_id", cargo.MonthlyPlanID),
			zap.Int("month", period.Month),
			zap.Int("year", period.Year))
	}

	window := services.ParseLaycan(text, period.Month, period.Year)
	if !window.Valid {
		d.logger.Debug("skip cargo with unparseable laycan",
			zap.String("cargo_id", cargo.ID),
			zap.String("text", text))
		return nil
	}

	product := cargo.ProductName
	if product == "" && hasPlan {
		product = run.idx.ProductOfPlan(mp)
	}

	base := entities.CalendarEvent{
		ContractID:     contract.ID,
		ContractNumber: contract.Label(),
		ContractType:   contract.Type,
		CustomerID:     contract.CustomerID,
		CargoID:        cargo.ID,
		MonthlyPlanID:  cargo.MonthlyPlanID,
		VesselName:     cargo.Vessel(),
		ProductName:    product,
		Quantity:       cargo.Quantity,
		Status:         cargo.Status.String(),
		IsTBA:          cargo.IsTBA(),
		PeriodSource:   source,
	}
	if customer, ok := run.idx.Customers[contract.CustomerID]; ok {
		base.CustomerName = customer.Name
	}

	completed := cargo.Status.IsCompleted()

	main := base
	main.Kind = windowKind(contract.Type)
	main.Start = window.Start
	main.End = window.End
	main.IsOverdue = window.End.Before(run.today) && !completed
	main.ID = EventID(main.Kind, "cargo:"+cargo.ID)
	finish(run, &main, completed)
	events := []entities.CalendarEvent{main}

	if contract.Type != entities.CIF {
		return events
	}

	if contract.TNGLeadDays != nil && cargo.TNGIssued != nil {
		due := window.Start.AddDate(0, 0, -*contract.TNGLeadDays)
		tng := base
		tng.Kind = entities.EventTNGDue
		tng.Start = due
		tng.End = due
		tng.IsOverdue = due.Before(run.today) && !*cargo.TNGIssued
		tng.ID = EventID(tng.Kind, "cargo:"+cargo.ID)
		finish(run, &tng, *cargo.TNGIssued)
		events = append(events, tng)
	}

	if cargo.FiveNDDate != nil && !cargo.FiveNDCompleted {
		due := services.DateOnly(*cargo.FiveNDDate, time.UTC)
		nd := base
		nd.Kind = entities.EventNDDue
		nd.Start = due
		nd.End = due
		nd.IsOverdue = due.Before(run.today)
		nd.ID = EventID(nd.Kind, "cargo:"+cargo.ID)
		finish(run, &nd, false)
		events = append(events, nd)
	}

	return events
}

// planEvent derives the TBA window event of a monthly plan that has no cargo yet
func (d *Deriver) planEvent(run *derivation, mp *entities.MonthlyPlan) (entities.CalendarEvent, bool) {
	contract, ok := run.idx.ContractOfPlan(mp)
	if !ok {
		d.logger.Debug("skip monthly plan without contract", zap.String("monthly_plan_id", mp.ID))
		return entities.CalendarEvent{}, false
	}

	text := strings.TrimSpace(mp.LaycanText(contract.Type))
	if text == "" {
		return entities.CalendarEvent{}, false
	}
	window := services.ParseLaycan(text, mp.Month, mp.Year)
	if !window.Valid {
		d.logger.Debug("skip monthly plan with unparseable laycan",
			zap.String("monthly_plan_id", mp.ID),
			zap.String("text", text))
		return entities.CalendarEvent{}, false
	}

	event := entities.CalendarEvent{
		Kind:           windowKind(contract.Type),
		Start:          window.Start,
		End:            window.End,
		IsOverdue:      window.End.Before(run.today),
		IsTBA:          true,
		ContractID:     contract.ID,
		ContractNumber: contract.Label(),
		ContractType:   contract.Type,
		CustomerID:     contract.CustomerID,
		MonthlyPlanID:  mp.ID,
		VesselName:     "TBA",
		ProductName:    run.idx.ProductOfPlan(mp),
		Quantity:       mp.Quantity,
		PeriodSource:   entities.PeriodFromPlan,
	}
	if customer, ok := run.idx.Customers[contract.CustomerID]; ok {
		event.CustomerName = customer.Name
	}
	event.ID = EventID(event.Kind, "plan:"+mp.ID)
	finish(run, &event, false)
	return event, true
}

// finish fills the title, days-until and severity. Days run to the start date, except for
// overdue events where they run to the end date, so the count is how long the window has
// been closed. A window that is open today counts as due today. Events whose action is
// already done carry no severity.
func finish(run *derivation, e *entities.CalendarEvent, done bool) {
	e.Title = fmt.Sprintf("%s: %s (%s)", e.Kind.Label(), e.ContractNumber, e.VesselName)
	switch {
	case e.IsOverdue:
		e.DaysUntil = services.DaysUntil(e.End, run.today, time.UTC)
	case e.End.Before(run.today):
		e.DaysUntil = services.DaysUntil(e.Start, run.today, time.UTC)
	default:
		e.DaysUntil = max(services.DaysUntil(e.Start, run.today, time.UTC), 0)
	}
	if done {
		e.Severity = entities.SeverityNone
		return
	}
	days := e.DaysUntil
	e.Severity = services.ClassifySeverity(&days)
}

func windowKind(t entities.ContractType) entities.EventKind {
	if t == entities.CIF {
		return entities.EventCIFLoading
	}
	return entities.EventFOBLaycan
}
