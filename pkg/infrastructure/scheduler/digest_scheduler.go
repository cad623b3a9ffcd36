package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/application/services/alerts"
	"github.com/vsinha/liftplan/pkg/infrastructure/events"
)

// DigestFunc builds a fresh alert digest
type DigestFunc func(ctx context.Context) (*dto.AlertDigest, error)

// DigestScheduler rebuilds the alert digest on a cron schedule and appends the changes
// since the previous run to an event store
type DigestScheduler struct {
	cron     *cron.Cron
	cronExpr string
	build    DigestFunc
	tracker  *alerts.Tracker
	store    events.EventStore
	timeout  time.Duration
	logger   *zap.Logger

	// runs is the parent of every scheduled digest context; Stop cancels it
	runs       context.Context
	cancelRuns context.CancelFunc
}

// NewDigestScheduler creates a scheduler for a standard five-field cron expression evaluated in loc
func NewDigestScheduler(
	cronExpr string,
	loc *time.Location,
	build DigestFunc,
	store events.EventStore,
	logger *zap.Logger,
) (*DigestScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &DigestScheduler{
		cronExpr: cronExpr,
		build:    build,
		tracker:  alerts.NewTracker(),
		store:    store,
		timeout:  2 * time.Minute,
		logger:   logger,
	}
	s.runs, s.cancelRuns = context.WithCancel(context.Background())
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{sugar: logger.Sugar()})),
	)
	if _, err := s.cron.AddFunc(cronExpr, s.runScheduled); err != nil {
		s.cancelRuns()
		return nil, fmt.Errorf("invalid digest schedule %q: %w", cronExpr, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *DigestScheduler) Start() {
	s.logger.Info("starting digest scheduler", zap.String("cron", s.cronExpr))
	s.cron.Start()
}

// Stop stops the scheduler, cancels a running digest and waits for it to return.
func (s *DigestScheduler) Stop() {
	s.logger.Info("stopping digest scheduler")
	done := s.cron.Stop()
	s.cancelRuns()
	<-done.Done()
}

// RunOnce builds one digest and publishes it together with raised and cleared alerts
func (s *DigestScheduler) RunOnce(ctx context.Context) error {
	digest, err := s.build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build alert digest: %w", err)
	}

	raised, cleared := s.tracker.Diff(digest)
	at := digest.GeneratedAt

	publish := func(eventType string, data interface{}) error {
		return s.store.AppendEvent(events.DigestStream, events.NewEvent(eventType, events.DigestStream, data, at))
	}

	if err := publish(events.DigestBuiltEvent, events.DigestBuilt{
		GeneratedAt: digest.GeneratedAt,
		Counts:      digest.Counts,
		Alerts:      len(digest.Alerts),
	}); err != nil {
		return err
	}
	for _, a := range raised {
		if err := publish(events.AlertRaisedEvent, events.AlertRaised{Alert: a}); err != nil {
			return err
		}
	}
	for _, a := range cleared {
		if err := publish(events.AlertClearedEvent, events.AlertCleared{Alert: a}); err != nil {
			return err
		}
	}

	s.logger.Info("alert digest published",
		zap.Int("alerts", len(digest.Alerts)),
		zap.Int("raised", len(raised)),
		zap.Int("cleared", len(cleared)))
	return nil
}

func (s *DigestScheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(s.runs, s.timeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled digest failed", zap.Error(err))
	}
}

// cronLogger routes cron's own messages into zap
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
