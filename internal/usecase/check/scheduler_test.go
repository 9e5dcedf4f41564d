package check_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"postwatch/internal/usecase/check"
)

type countingChecker struct {
	name    string
	calls   atomic.Int64
	delay   time.Duration
	failAll bool
}

func (c *countingChecker) Name() string { return c.name }

func (c *countingChecker) Check(ctx context.Context) (*check.CycleStats, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.failAll {
		return nil, errors.New("feed unavailable")
	}
	return &check.CycleStats{}, nil
}

type recordingObserver struct {
	mu    sync.Mutex
	seen  []string
	erred int
}

func (o *recordingObserver) ObserveCycle(platform string, _ *check.CycleStats, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, platform)
	if err != nil {
		o.erred++
	}
}

func TestScheduler_RunsEachCheckerIndependently(t *testing.T) {
	yt := &countingChecker{name: "YouTube"}
	rd := &countingChecker{name: "Reddit"}
	obs := &recordingObserver{}

	s := check.NewScheduler(5*time.Millisecond, []check.Checker{yt, rd}, obs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for yt.calls.Load() < 3 || rd.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("checkers did not repeat: yt=%d rd=%d", yt.calls.Load(), rd.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.seen) < 6 {
		t.Fatalf("observer saw %d cycles, want at least 6", len(obs.seen))
	}
}

func TestScheduler_FailingCheckerKeepsGoing(t *testing.T) {
	bad := &countingChecker{name: "Reddit", failAll: true}
	obs := &recordingObserver{}

	s := check.NewScheduler(time.Millisecond, []check.Checker{bad}, obs)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if bad.calls.Load() < 2 {
		t.Fatalf("checker ran %d times, want a failed cycle followed by another", bad.calls.Load())
	}
	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.erred == 0 {
		t.Fatal("observer never saw the cycle error")
	}
}

func TestScheduler_WaitsFullIntervalAfterCycleEnd(t *testing.T) {
	// The gap runs end-to-start: a slow cycle must not shorten the pause
	// before the next one.
	slow := &countingChecker{name: "YouTube", delay: 30 * time.Millisecond}

	s := check.NewScheduler(30*time.Millisecond, []check.Checker{slow}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	// 100ms window, each round costs ~60ms (cycle + interval). Anything
	// near interval-only pacing would fit 3+.
	if n := slow.calls.Load(); n > 2 {
		t.Fatalf("checker ran %d times in 100ms, interval measured start-to-start", n)
	}
}
