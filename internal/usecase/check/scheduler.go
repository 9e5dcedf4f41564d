package check

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CycleObserver receives the outcome of every completed cycle. The worker
// package implements it with Prometheus metrics.
type CycleObserver interface {
	ObserveCycle(platform string, stats *CycleStats, err error)
}

// Scheduler runs each checker on its own fixed-interval loop, forever. The
// interval is measured from the end of one cycle to the start of the next,
// so cycle duration may vary without drift correction. The loops share no
// state; cross-cycle coordination is delegated entirely to the dedup store.
type Scheduler struct {
	interval time.Duration
	checkers []Checker
	observer CycleObserver // may be nil
}

// NewScheduler builds a scheduler for the given checkers.
func NewScheduler(interval time.Duration, checkers []Checker, observer CycleObserver) *Scheduler {
	return &Scheduler{
		interval: interval,
		checkers: checkers,
		observer: observer,
	}
}

// Run starts one loop per checker and blocks until ctx is cancelled. On
// shutdown it simply stops scheduling further cycles; an in-flight cycle is
// abandoned, which is safe because the next tick is idempotent through the
// dedup store.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, checker := range s.checkers {
		checker := checker
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, checker)
		}()
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, checker Checker) {
	logger := slog.Default()
	logger.Info("checker loop started",
		slog.String("platform", checker.Name()),
		slog.Duration("interval", s.interval))

	for {
		stats, err := checker.Check(ctx)
		if s.observer != nil {
			s.observer.ObserveCycle(checker.Name(), stats, err)
		}
		if err != nil {
			logger.Error("cycle ended early",
				slog.String("platform", checker.Name()),
				slog.Any("error", err))
		} else {
			logger.Info("cycle completed",
				slog.String("platform", checker.Name()),
				slog.Int("links", stats.Links),
				slog.Int64("items", stats.Items),
				slog.Int64("new_items", stats.NewItems),
				slog.Int64("duplicates", stats.Duplicates),
				slog.Int64("fetch_errors", stats.FetchErrors),
				slog.Int64("store_errors", stats.StoreErrors),
				slog.Int64("dispatch_errors", stats.DispatchErrors),
				slog.Duration("duration", stats.Duration))
		}

		select {
		case <-time.After(s.interval):
		case <-ctx.Done():
			logger.Info("checker loop stopped", slog.String("platform", checker.Name()))
			return
		}
	}
}
