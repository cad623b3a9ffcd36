package alerts

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/domain/services"
)

// Builder turns derived calendar events into a severity-ordered alert digest
type Builder struct {
	horizonDays int
	logger      *zap.Logger
}

// NewBuilder creates a digest builder. Events further out than horizonDays are left out;
// zero or less keeps everything the severity classifier flags.
func NewBuilder(horizonDays int, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// Build collects the actionable events into alerts, most severe first, then by date
func (b *Builder) Build(events []entities.CalendarEvent, generatedAt time.Time) *dto.AlertDigest {
	digest := &dto.AlertDigest{
		GeneratedAt: generatedAt,
		Counts:      make(map[entities.Severity]int),
	}

	for _, e := range events {
		if e.Severity == entities.SeverityNone {
			continue
		}
		if b.horizonDays > 0 && !e.IsOverdue && e.DaysUntil > b.horizonDays {
			continue
		}
		digest.Alerts = append(digest.Alerts, dto.Alert{
			Event:    e,
			Severity: e.Severity,
			Message:  Message(e),
		})
		digest.Counts[e.Severity]++
	}

	sort.SliceStable(digest.Alerts, func(i, j int) bool {
		a, c := digest.Alerts[i], digest.Alerts[j]
		if a.Severity != c.Severity {
			return a.Severity > c.Severity
		}
		if !a.Event.Start.Equal(c.Event.Start) {
			return a.Event.Start.Before(c.Event.Start)
		}
		return a.Event.ID < c.Event.ID
	})

	b.logger.Debug("alert digest built",
		zap.Int("events", len(events)),
		zap.Int("alerts", len(digest.Alerts)),
		zap.Int("critical", digest.Counts[entities.SeverityCritical]))

	return digest
}

// Message renders the due message of an event, labelled with its kind and contract
func Message(e entities.CalendarEvent) string {
	label := e.Kind.Label() + " " + e.ContractNumber
	return services.FormatDueMessage(label, e.DaysUntil, e.IsOverdue)
}
