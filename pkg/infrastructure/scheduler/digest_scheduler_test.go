package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
	"github.com/vsinha/liftplan/pkg/infrastructure/events"
)

func digestWith(ids ...string) *dto.AlertDigest {
	d := &dto.AlertDigest{
		GeneratedAt: time.Date(2024, 1, 20, 7, 0, 0, 0, time.UTC),
		Counts:      map[entities.Severity]int{},
	}
	for _, id := range ids {
		d.Alerts = append(d.Alerts, dto.Alert{
			Event:    entities.CalendarEvent{ID: id, Severity: entities.SeverityWarning},
			Severity: entities.SeverityWarning,
			Message:  "due " + id,
		})
		d.Counts[entities.SeverityWarning]++
	}
	return d
}

func eventTypes(t *testing.T, store *events.InMemoryEventStore, from int) []string {
	t.Helper()
	all, err := store.ReadAllEvents(from)
	require.NoError(t, err)
	types := make([]string, 0, len(all))
	for _, e := range all {
		types = append(types, e.Type())
	}
	return types
}

func TestDigestScheduler_RunOnce(t *testing.T) {
	digests := []*dto.AlertDigest{digestWith("a", "b"), digestWith("b")}
	calls := 0
	build := func(context.Context) (*dto.AlertDigest, error) {
		d := digests[calls]
		calls++
		return d, nil
	}

	store := events.NewInMemoryEventStore(zaptest.NewLogger(t))
	s, err := NewDigestScheduler("0 7 * * *", time.UTC, build, store, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{events.DigestBuiltEvent, events.AlertRaisedEvent, events.AlertRaisedEvent}, eventTypes(t, store, 0))

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []string{events.DigestBuiltEvent, events.AlertClearedEvent}, eventTypes(t, store, 3))

	all, err := store.ReadEvents(events.DigestStream, 5)
	require.NoError(t, err)
	require.Len(t, all, 1)
	cleared, ok := all[0].Data().(events.AlertCleared)
	require.True(t, ok)
	assert.Equal(t, "a", cleared.Alert.Event.ID)
}

func TestDigestScheduler_BuildError(t *testing.T) {
	build := func(context.Context) (*dto.AlertDigest, error) {
		return nil, errors.New("data dir unreadable")
	}
	store := events.NewInMemoryEventStore(nil)
	s, err := NewDigestScheduler("@daily", nil, build, store, nil)
	require.NoError(t, err)

	err = s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data dir unreadable")
	assert.Empty(t, eventTypes(t, store, 0))
}

func TestDigestScheduler_InvalidCronExpression(t *testing.T) {
	_, err := NewDigestScheduler("every morning", time.UTC, nil, events.NewInMemoryEventStore(nil), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid digest schedule")
}

func TestDigestScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	build := func(context.Context) (*dto.AlertDigest, error) {
		runs.Add(1)
		return digestWith("a"), nil
	}

	s, err := NewDigestScheduler("@every 1s", time.UTC, build, events.NewInMemoryEventStore(nil), nil)
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestDigestScheduler_StopCancelsRunningDigest(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	var once sync.Once
	var buildErr atomic.Value
	build := func(ctx context.Context) (*dto.AlertDigest, error) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		buildErr.Store(ctx.Err())
		return nil, ctx.Err()
	}

	s, err := NewDigestScheduler("@every 1s", time.UTC, build, events.NewInMemoryEventStore(nil), nil)
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("digest never started")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not cancel the running digest")
	}
	assert.ErrorIs(t, buildErr.Load().(error), context.Canceled)
}
