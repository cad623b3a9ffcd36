package liftplan

import (
	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// Snapshot input and engine results, re-exported for callers embedding the engine
type (
	Snapshot        = dto.Snapshot
	ScheduleResult  = dto.ScheduleResult
	CalendarFilters = dto.CalendarFilters
	AlertDigest     = dto.AlertDigest

	Contract      = entities.Contract
	Customer      = entities.Customer
	QuarterlyPlan = entities.QuarterlyPlan
	MonthlyPlan   = entities.MonthlyPlan
	Cargo         = entities.Cargo
	ScheduleRow   = entities.ScheduleRow
	CalendarEvent = entities.CalendarEvent
	Quarter       = entities.Quarter
	Period        = entities.Period
)

// Quarters of a schedule window
const (
	Q1      = entities.Q1
	Q2      = entities.Q2
	Q3      = entities.Q3
	Q4      = entities.Q4
	AllYear = entities.AllQuarter
)
