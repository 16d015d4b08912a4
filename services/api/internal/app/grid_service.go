package app

import (
	"context"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

type GridRepository interface {
	PurgeExpiredLocks(ctx context.Context, now time.Time) (int64, error)
	ListMachines(ctx context.Context, classID string, now time.Time) ([]domain.MachineView, error)
}

// GridService serves the read side: every machine with its derived
// status for one class scope, ordered by grid position.
type GridService struct {
	repo  GridRepository
	clock clock.Clock
}

func NewGridService(repo GridRepository, clk clock.Clock) *GridService {
	return &GridService{
		repo:  repo,
		clock: clk,
	}
}

// ListMachines purges expired locks and returns the current view. The
// purge is how dead locks become externally invisible without a timer;
// the list query additionally filters on expiry, so even a skipped purge
// never resurrects a dead lock.
func (s *GridService) ListMachines(ctx context.Context, classID string) ([]domain.MachineView, error) {
	now := s.clock.Now()
	if _, err := s.repo.PurgeExpiredLocks(ctx, now); err != nil {
		return nil, err
	}
	return s.repo.ListMachines(ctx, classID, now)
}
