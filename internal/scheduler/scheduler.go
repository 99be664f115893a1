package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clubsite/backend/internal/standings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StandingsJobID identifies the daily standings refresh
const StandingsJobID = "standings_update"

// Refresher is the part of the standings pipeline the scheduler drives
type Refresher interface {
	Refresh(ctx context.Context, trigger standings.Trigger) bool
}

// Scheduler runs named cron jobs. Registering an id that already exists
// replaces the previous entry, so a job is never scheduled twice.
type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location

	mu     sync.Mutex
	jobs   map[string]cron.EntryID
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler whose cron specs are evaluated in loc
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}

	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
		loc:  loc,
		jobs: make(map[string]cron.EntryID),
	}
}

// AddJob registers fn under id with a standard five-field cron spec
func (s *Scheduler) AddJob(id, spec string, fn func(ctx context.Context)) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.jobs[id]; ok {
		s.cron.Remove(prev)
		log.Info().Str("job", id).Msg("Replacing existing scheduled job")
	}

	entryID, err := s.cron.AddFunc(spec, func() { s.run(id, fn) })
	if err != nil {
		delete(s.jobs, id)
		return fmt.Errorf("failed to schedule job %s: %w", id, err)
	}
	s.jobs[id] = entryID

	log.Info().
		Str("job", id).
		Str("schedule", spec).
		Str("timezone", s.loc.String()).
		Msg("Job scheduled")

	return nil
}

// ScheduleStandingsRefresh registers the daily standings refresh
func (s *Scheduler) ScheduleStandingsRefresh(spec string, r Refresher) error {
	return s.AddJob(StandingsJobID, spec, func(ctx context.Context) {
		r.Refresh(ctx, standings.TriggerScheduled)
	})
}

// NextRun reports when the job will fire next
func (s *Scheduler) NextRun(id string) (time.Time, bool) {
	s.mu.Lock()
	entryID, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}

	entry := s.cron.Entry(entryID)
	if !entry.Valid() {
		return time.Time{}, false
	}
	if !entry.Next.IsZero() {
		return entry.Next, true
	}
	return entry.Schedule.Next(time.Now().In(s.loc)), true
}

// Start starts the cron loop. Jobs receive a context derived from ctx
// that is canceled on Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop halts the cron loop, cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	done := s.cron.Stop()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-done.Done()
	log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) run(id string, fn func(ctx context.Context)) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	log.Info().Str("job", id).Msg("Running scheduled job")
	fn(ctx)
	log.Info().
		Str("job", id).
		Dur("duration", time.Since(start)).
		Msg("Scheduled job finished")
}

// cronLogger routes cron's internal logging through zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
