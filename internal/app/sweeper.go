package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/clock"
)

// SweeperRepository is the slice of the ledger the sweeper needs.
type SweeperRepository interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically flips stale reserved rows to expired. It is
// housekeeping only: availability already excludes stale holds by comparing
// expires_at, and confirm performs the same transition lazily. The sweep keeps
// the status column honest for reporting and bounds the number of
// live-looking reserved rows.
type Sweeper struct {
	repo     SweeperRepository
	clock    clock.Clock
	log      *slog.Logger
	interval time.Duration
}

const defaultSweepInterval = time.Minute

func NewSweeper(repo SweeperRepository, clk clock.Clock, log *slog.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		repo:     repo,
		clock:    clk,
		log:      log,
		interval: interval,
	}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.log.Error("expiry sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce expires every reservation whose hold window has elapsed and
// returns how many were reclaimed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	reclaimed, err := s.repo.ExpireStale(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if reclaimed > 0 {
		s.log.Info("expired stale reservations", "count", reclaimed)
	}
	return reclaimed, nil
}
