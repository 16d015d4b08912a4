package app

import (
	"context"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/rs/zerolog"
)

type LockPurger interface {
	PurgeExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper deletes expired lock rows on an interval. Every read and write
// path already treats expired locks as absent, so the sweeper only keeps
// the locks table from accumulating dead rows between reads.
type Sweeper struct {
	repo     LockPurger
	clock    clock.Clock
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweeper(repo LockPurger, clk clock.Clock, interval time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.repo.PurgeExpiredLocks(ctx, s.clock.Now())
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn().Err(err).Msg("purge expired locks")
				continue
			}
			if purged > 0 {
				s.logger.Debug().Int64("purged", purged).Msg("purged expired locks")
			}
		}
	}
}
