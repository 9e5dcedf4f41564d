package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func trippyConfig() Config {
	return Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestCircuitBreaker_PassesResultsThrough(t *testing.T) {
	cb := New(trippyConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute() err = %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %v, want ok", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}

func TestCircuitBreaker_TripsOnSustainedFailure(t *testing.T) {
	cb := New(trippyConfig())
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open after sustained failures", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("Execute() err = %v, want ErrOpenState while open", err)
	}
}

func TestCircuitBreaker_StaysClosedBelowMinRequests(t *testing.T) {
	cb := New(trippyConfig())

	_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("boom") })

	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed under the request minimum", cb.State())
	}
}
