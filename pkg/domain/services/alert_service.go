package services

import (
	"fmt"
	"math"
	"time"

	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// Severity thresholds in days, inclusive upper bounds
const (
	CriticalWithinDays = 2
	WarningWithinDays  = 7
	InfoWithinDays     = 14
)

// ClassifySeverity maps days until an event to a severity tier. A nil value means the
// event has no date.
func ClassifySeverity(daysUntil *int) entities.Severity {
	if daysUntil == nil {
		return entities.SeverityNone
	}

	d := *daysUntil
	switch {
	case d <= CriticalWithinDays:
		// includes everything already past
		return entities.SeverityCritical
	case d <= WarningWithinDays:
		return entities.SeverityWarning
	case d <= InfoWithinDays:
		return entities.SeverityInfo
	default:
		return entities.SeverityNone
	}
}

// DaysUntil returns the whole days from today to the event date, with today normalized to
// midnight in loc. Negative values mean the date has passed.
func DaysUntil(event, today time.Time, loc *time.Location) int {
	eventDay := DateOnly(event, time.UTC)
	todayDay := DateOnly(today, loc)
	return int(math.Floor(eventDay.Sub(todayDay).Hours() / 24))
}

// FormatDueMessage renders the human message for an event that is due or overdue
func FormatDueMessage(label string, daysUntil int, isOverdue bool) string {
	if isOverdue || daysUntil < 0 {
		n := -daysUntil
		if n <= 0 {
			return fmt.Sprintf("%s is overdue", label)
		}
		return fmt.Sprintf("Overdue by %d %s", n, pluralDays(n))
	}

	switch daysUntil {
	case 0:
		return fmt.Sprintf("%s is today", label)
	case 1:
		return fmt.Sprintf("%s is tomorrow", label)
	default:
		return fmt.Sprintf("%s in %d %s", label, daysUntil, pluralDays(daysUntil))
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
