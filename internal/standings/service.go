package standings

import (
	"context"
	"errors"
	"fmt"

	"clubsite/backend/internal/models"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotAvailable is returned when no snapshot exists even after a lazy refresh
	ErrNotAvailable = errors.New("standings not available")

	// ErrRefreshFailed is returned by ForceRefresh when the pipeline did not write
	ErrRefreshFailed = errors.New("standings refresh failed")
)

// Service serves the current snapshot and fills the store on first read
type Service struct {
	store     Store
	refresher *Refresher
	group     singleflight.Group
}

// NewService creates a Service
func NewService(store Store, refresher *Refresher) *Service {
	return &Service{store: store, refresher: refresher}
}

// Current returns the stored snapshot. When none exists it runs one refresh
// inline; concurrent callers share that refresh.
func (s *Service) Current(ctx context.Context) (*models.StandingsSnapshot, error) {
	snap, err := s.store.Get(ctx, models.StandingsSnapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to read standings: %w", err)
	}
	if snap != nil {
		return snap, nil
	}

	// The shared refresh must outlive whichever request started it.
	refreshCtx := context.WithoutCancel(ctx)
	_, _, _ = s.group.Do(models.StandingsSnapshotID, func() (interface{}, error) {
		// a flight that finished just before this one may have filled the store
		if existing, err := s.store.Get(refreshCtx, models.StandingsSnapshotID); err == nil && existing != nil {
			return true, nil
		}
		return s.refresher.Refresh(refreshCtx, TriggerLazy), nil
	})

	snap, err = s.store.Get(ctx, models.StandingsSnapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to read standings: %w", err)
	}
	if snap == nil {
		return nil, ErrNotAvailable
	}
	return snap, nil
}

// ForceRefresh runs the pipeline now and returns the new snapshot
func (s *Service) ForceRefresh(ctx context.Context) (*models.StandingsSnapshot, error) {
	if !s.refresher.Refresh(ctx, TriggerManual) {
		return nil, ErrRefreshFailed
	}

	snap, err := s.store.Get(ctx, models.StandingsSnapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to read standings: %w", err)
	}
	if snap == nil {
		return nil, ErrNotAvailable
	}
	return snap, nil
}
