package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"postwatch/internal/repository"
)

// Sweeper prunes old dedup records on a cron schedule. Feeds only surface
// recent items, so records past the retention window can never collide
// again and only grow the table.
type Sweeper struct {
	posts     repository.PostRepository
	retention time.Duration
	metrics   *CheckerMetrics // may be nil
	cron      *cron.Cron
}

// NewSweeper builds a sweeper that keeps records younger than retention.
func NewSweeper(posts repository.PostRepository, retention time.Duration, metrics *CheckerMetrics) *Sweeper {
	return &Sweeper{
		posts:     posts,
		retention: retention,
		metrics:   metrics,
		cron:      cron.New(),
	}
}

// Start schedules the sweep with a cron expression such as "0 4 * * *".
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			slog.Error("retention sweep failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("Start: schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	slog.Info("retention sweep scheduled",
		slog.String("schedule", schedule),
		slog.Duration("retention", s.retention))
	return nil
}

// Stop cancels future sweeps. A sweep already running finishes on its own.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.posts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordSweep(deleted)
	}
	slog.Info("retention sweep completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff))
	return nil
}
