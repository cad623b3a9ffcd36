package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/liftplan/pkg/domain/entities"
)

func event(id string, kind entities.EventKind, days int, severity entities.Severity, overdue bool) entities.CalendarEvent {
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	return entities.CalendarEvent{
		ID:             id,
		Kind:           kind,
		Start:          today.AddDate(0, 0, days),
		End:            today.AddDate(0, 0, days),
		ContractNumber: "TC-" + id,
		DaysUntil:      days,
		Severity:       severity,
		IsOverdue:      overdue,
	}
}

func TestBuild_OrdersBySeverityThenDate(t *testing.T) {
	events := []entities.CalendarEvent{
		event("a", entities.EventCIFLoading, 10, entities.SeverityInfo, false),
		event("b", entities.EventTNGDue, 1, entities.SeverityCritical, false),
		event("c", entities.EventFOBLaycan, -3, entities.SeverityCritical, true),
		event("d", entities.EventNDDue, 5, entities.SeverityWarning, false),
		event("e", entities.EventFOBLaycan, 30, entities.SeverityNone, false),
	}

	digest := NewBuilder(0, nil).Build(events, time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC))

	require.Len(t, digest.Alerts, 4)
	ids := make([]string, 0, len(digest.Alerts))
	for _, a := range digest.Alerts {
		ids = append(ids, a.Event.ID)
	}
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids)
	assert.Equal(t, 2, digest.Counts[entities.SeverityCritical])
	assert.Equal(t, 1, digest.Counts[entities.SeverityWarning])
	assert.Equal(t, 1, digest.Counts[entities.SeverityInfo])
	assert.Zero(t, digest.Counts[entities.SeverityNone])
}

func TestBuild_Horizon(t *testing.T) {
	events := []entities.CalendarEvent{
		event("a", entities.EventCIFLoading, 10, entities.SeverityInfo, false),
		event("b", entities.EventNDDue, 5, entities.SeverityWarning, false),
		event("c", entities.EventFOBLaycan, -3, entities.SeverityCritical, true),
	}

	digest := NewBuilder(7, nil).Build(events, time.Now())

	require.Len(t, digest.Alerts, 2)
	assert.Equal(t, "c", digest.Alerts[0].Event.ID)
	assert.Equal(t, "b", digest.Alerts[1].Event.ID)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name  string
		event entities.CalendarEvent
		want  string
	}{
		{
			name:  "overdue",
			event: event("1", entities.EventFOBLaycan, -3, entities.SeverityCritical, true),
			want:  "Overdue by 3 days",
		},
		{
			name:  "today",
			event: event("2", entities.EventTNGDue, 0, entities.SeverityCritical, false),
			want:  "TNG TC-2 is today",
		},
		{
			name:  "tomorrow",
			event: event("3", entities.EventNDDue, 1, entities.SeverityCritical, false),
			want:  "5-day notice TC-3 is tomorrow",
		},
		{
			name:  "later",
			event: event("4", entities.EventCIFLoading, 9, entities.SeverityInfo, false),
			want:  "Loading window TC-4 in 9 days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.event))
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	digest := NewBuilder(14, nil).Build(nil, time.Now())

	assert.Empty(t, digest.Alerts)
	assert.NotNil(t, digest.Counts)
}
