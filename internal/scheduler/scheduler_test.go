package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"clubsite/backend/internal/standings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	mu       sync.Mutex
	triggers []standings.Trigger
}

func (r *recordingRefresher) Refresh(ctx context.Context, trigger standings.Trigger) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, trigger)
	return true
}

func TestScheduleStandingsRefresh_DailyAtThree(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	s := NewScheduler(loc)
	require.NoError(t, s.ScheduleStandingsRefresh("0 3 * * *", &recordingRefresher{}))

	next, ok := s.NextRun(StandingsJobID)
	require.True(t, ok)

	inLoc := next.In(loc)
	assert.Equal(t, 3, inLoc.Hour())
	assert.Equal(t, 0, inLoc.Minute())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(25*time.Hour)))
}

func TestAddJob_SameIDReplacesEntry(t *testing.T) {
	s := NewScheduler(time.UTC)
	r := &recordingRefresher{}

	require.NoError(t, s.ScheduleStandingsRefresh("0 3 * * *", r))
	require.NoError(t, s.ScheduleStandingsRefresh("0 3 * * *", r))
	require.NoError(t, s.ScheduleStandingsRefresh("30 4 * * *", r))

	assert.Len(t, s.cron.Entries(), 1, "Job must be registered once")

	next, ok := s.NextRun(StandingsJobID)
	require.True(t, ok)
	assert.Equal(t, 4, next.In(time.UTC).Hour())
	assert.Equal(t, 30, next.In(time.UTC).Minute())
}

func TestAddJob_InvalidSpecKeepsPrevious(t *testing.T) {
	s := NewScheduler(time.UTC)
	r := &recordingRefresher{}

	require.NoError(t, s.ScheduleStandingsRefresh("0 3 * * *", r))
	err := s.ScheduleStandingsRefresh("not a cron spec", r)
	assert.Error(t, err)

	assert.Len(t, s.cron.Entries(), 1)
	_, ok := s.NextRun(StandingsJobID)
	assert.True(t, ok)
}

func TestStandingsJob_UsesScheduledTrigger(t *testing.T) {
	s := NewScheduler(time.UTC)
	r := &recordingRefresher{}
	require.NoError(t, s.ScheduleStandingsRefresh("0 3 * * *", r))

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, []standings.Trigger{standings.TriggerScheduled}, r.triggers)
}

func TestStop_CancelsJobContext(t *testing.T) {
	s := NewScheduler(time.UTC)

	var jobCtx context.Context
	require.NoError(t, s.AddJob("probe", "@every 1h", func(ctx context.Context) { jobCtx = ctx }))

	s.Start(context.Background())
	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	entries[0].Job.Run()
	s.Stop()

	require.NotNil(t, jobCtx)
	assert.Error(t, jobCtx.Err(), "Job context is canceled once the scheduler stops")
}

func TestNextRun_UnknownJob(t *testing.T) {
	s := NewScheduler(nil)
	_, ok := s.NextRun("missing")
	assert.False(t, ok)
}
