// Package scheduler runs the periodic maintenance job: sweeping expired
// files and pruning old download logs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"minecrox-server/services/pack-api/internal/infrastructure/metrics"
)

// Maintenance is the subset of the file service the scheduler drives.
type Maintenance interface {
	SweepExpired(ctx context.Context, batchSize int) (int, error)
	PruneDownloadLogs(ctx context.Context) (int64, error)
}

// Scheduler triggers maintenance on a fixed interval with at most one run
// in flight at a time. Start and Stop tie it to the process lifecycle.
type Scheduler struct {
	svc       Maintenance
	interval  time.Duration
	batchSize int
	log       zerolog.Logger

	running sync.Mutex
	done    chan struct{}
}

func New(svc Maintenance, interval time.Duration, batchSize int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		svc:       svc,
		interval:  interval,
		batchSize: batchSize,
		log:       log.With().Str("component", "maintenance-scheduler").Logger(),
		done:      make(chan struct{}),
	}
}

// Start begins the maintenance loop in a background goroutine. One cycle
// runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("maintenance scheduler started")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.RunOnce(ctx)

		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx)
			case <-ctx.Done():
				s.log.Info().Msg("maintenance scheduler stopping")
				close(s.done)
				return
			}
		}
	}()
}

// Wait blocks until the scheduler has fully stopped.
func (s *Scheduler) Wait() {
	<-s.done
}

// RunOnce executes one maintenance cycle. If a cycle is already in flight
// the call returns immediately; runs never overlap.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.running.TryLock() {
		s.log.Warn().Msg("maintenance cycle still running, skipping this tick")
		return
	}
	defer s.running.Unlock()

	purged, err := s.svc.SweepExpired(ctx, s.batchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("expired file sweep failed")
	} else if purged > 0 {
		metrics.SweepPurgedTotal.Add(float64(purged))
	}

	pruned, err := s.svc.PruneDownloadLogs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("download log prune failed")
	}

	if purged > 0 || pruned > 0 {
		s.log.Info().Int("purged", purged).Int64("pruned", pruned).Msg("maintenance cycle complete")
	}
}
