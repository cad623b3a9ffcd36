package entities

import (
	"fmt"
	"strings"
	"time"
)

// EventKind discriminates calendar events
type EventKind string

const (
	EventFOBLaycan  EventKind = "fob_laycan"
	EventCIFLoading EventKind = "cif_loading"
	EventTNGDue     EventKind = "tng_due"
	EventNDDue      EventKind = "nd_due"
)

// EventKinds lists every event kind
var EventKinds = []EventKind{EventFOBLaycan, EventCIFLoading, EventTNGDue, EventNDDue}

// ParseEventKind parses an event kind label
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range EventKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid event kind: %s", s)
}

// Label returns a short human label for the kind
func (k EventKind) Label() string {
	switch k {
	case EventFOBLaycan:
		return "Laycan"
	case EventCIFLoading:
		return "Loading window"
	case EventTNGDue:
		return "TNG"
	case EventNDDue:
		return "5-day notice"
	default:
		return string(k)
	}
}

// Severity is the urgency tier of an upcoming or overdue event
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityCritical
)

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "NONE"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "Unknown"
	}
}

// ParseSeverity parses a severity label
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return SeverityNone, nil
	case "INFO":
		return SeverityInfo, nil
	case "WARNING":
		return SeverityWarning, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return SeverityNone, fmt.Errorf("invalid severity: %s", s)
	}
}

// CalendarEvent is a discrete dated event derived from cargos and monthly plans
type CalendarEvent struct {
	ID             string
	Kind           EventKind
	Title          string
	Start          time.Time
	End            time.Time
	IsOverdue      bool
	IsTBA          bool
	ContractID     string
	ContractNumber string
	ContractType   ContractType
	CustomerID     string
	CustomerName   string
	CargoID        string
	MonthlyPlanID  string
	VesselName     string
	ProductName    string
	Quantity       Quantity
	Status         string
	DaysUntil      int
	Severity       Severity
	PeriodSource   PeriodSource
}
