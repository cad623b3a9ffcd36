package liftplan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/application/services/alerts"
	"github.com/vsinha/liftplan/pkg/application/services/calendar"
	"github.com/vsinha/liftplan/pkg/application/services/schedule"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/infrastructure/repositories/csv"
)

// EngineConfig holds configuration for the lifting engine
type EngineConfig struct {
	// HorizonDays drops upcoming alerts further out than this many days (0 = no limit)
	HorizonDays int
	// Location is the timezone "today" is normalized in (nil = UTC)
	Location *time.Location
	// FallbackPeriod is used for cargos without a monthly plan (zero = the current month)
	FallbackPeriod Period
	Logger         *zap.Logger
}

// Engine derives schedules, calendars and alert digests from snapshots
type Engine struct {
	scheduleBuilder *schedule.Builder
	deriver         *calendar.Deriver
	digestBuilder   *alerts.Builder
	loader          *csv.Loader
	config          EngineConfig
}

// NewEngine creates an engine with a 14 day alert horizon in UTC
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{HorizonDays: 14})
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(config EngineConfig) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	return &Engine{
		scheduleBuilder: schedule.NewBuilder(logger.Named("schedule")),
		deriver:         calendar.NewDeriver(logger.Named("calendar")),
		digestBuilder:   alerts.NewBuilder(config.HorizonDays, logger.Named("alerts")),
		loader:          csv.NewLoader(logger.Named("csv")),
		config:          config,
	}
}

// LoadDir reads a snapshot from a directory of CSV files
func (e *Engine) LoadDir(ctx context.Context, dir string) (*Snapshot, error) {
	return e.loader.LoadSnapshot(ctx, dir)
}

// Schedule builds the per-contract schedule of a year, or of one quarter of it
func (e *Engine) Schedule(snapshot *Snapshot, year int, quarter Quarter, productFilter string) *ScheduleResult {
	return e.scheduleBuilder.BuildResult(snapshot, entities.Window{Year: year, Quarter: quarter}, productFilter)
}

// Calendar derives the calendar events as seen on today
func (e *Engine) Calendar(snapshot *Snapshot, today time.Time, filters CalendarFilters) []CalendarEvent {
	return e.deriver.Derive(snapshot, e.options(today, filters))
}

// Digest builds the alert digest as seen on today
func (e *Engine) Digest(snapshot *Snapshot, today time.Time) *AlertDigest {
	events := e.deriver.Derive(snapshot, e.options(today, CalendarFilters{}))
	return e.digestBuilder.Build(events, today)
}

func (e *Engine) options(today time.Time, filters CalendarFilters) dto.CalendarOptions {
	return dto.CalendarOptions{
		Today:          today,
		Location:       e.config.Location,
		FallbackPeriod: e.config.FallbackPeriod,
		Filters:        filters,
	}
}
