package dto

import (
	"time"

	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// ScheduleResult contains the schedule rows for one window, keyed by contract id
type ScheduleResult struct {
	Window        entities.Window
	ProductFilter string
	Rows          map[string]entities.ScheduleRow
	GrandTotal    entities.Quantity
}

// CalendarFilters narrows derived events. Empty sets do not filter.
type CalendarFilters struct {
	CustomerIDs   map[string]bool
	ContractTypes map[entities.ContractType]bool
	Kinds         map[entities.EventKind]bool
	OverdueOnly   bool
	HideTBA       bool
}

// Matches reports whether an event passes the filters
func (f CalendarFilters) Matches(e entities.CalendarEvent) bool {
	if len(f.CustomerIDs) > 0 && !f.CustomerIDs[e.CustomerID] {
		return false
	}
	if len(f.ContractTypes) > 0 && !f.ContractTypes[e.ContractType] {
		return false
	}
	if len(f.Kinds) > 0 && !f.Kinds[e.Kind] {
		return false
	}
	if f.OverdueOnly && !e.IsOverdue {
		return false
	}
	if f.HideTBA && e.IsTBA {
		return false
	}
	return true
}

// CalendarOptions carries the reference time for a derivation
type CalendarOptions struct {
	// Today is the reference instant; it is normalized to midnight in Location
	Today    time.Time
	Location *time.Location

	// FallbackPeriod is used for cargos whose monthly plan link is missing.
	// Zero means the period containing Today.
	FallbackPeriod entities.Period

	Filters CalendarFilters
}

// Alert is one actionable calendar event with its severity and message
type Alert struct {
	Event    entities.CalendarEvent
	Severity entities.Severity
	Message  string
}

// AlertDigest is the severity-ordered alert list at a point in time
type AlertDigest struct {
	GeneratedAt time.Time
	Alerts      []Alert
	Counts      map[entities.Severity]int
}
