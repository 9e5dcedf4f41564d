// Package worker holds the bot's background machinery: cycle metrics and
// the dedup store retention sweep.
package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"postwatch/internal/usecase/check"
)

// CheckerMetrics exposes Prometheus metrics for the polling loops. It
// implements check.CycleObserver, so the scheduler feeds it directly.
//
// Metrics:
//   - postwatch_cycles_total: cycle runs by platform and status
//   - postwatch_cycle_duration_seconds: cycle duration histogram by platform
//   - postwatch_items_total: candidate items seen per platform
//   - postwatch_new_items_total: items that passed dedup per platform
//   - postwatch_duplicate_items_total: dedup hits per platform
//   - postwatch_fetch_errors_total / store_errors_total / dispatch_errors_total
//   - postwatch_swept_posts_total: dedup records removed by retention sweeps
type CheckerMetrics struct {
	CyclesTotal          *prometheus.CounterVec
	CycleDurationSeconds *prometheus.HistogramVec
	ItemsTotal           *prometheus.CounterVec
	NewItemsTotal        *prometheus.CounterVec
	DuplicateItemsTotal  *prometheus.CounterVec
	FetchErrorsTotal     *prometheus.CounterVec
	StoreErrorsTotal     *prometheus.CounterVec
	DispatchErrorsTotal  *prometheus.CounterVec
	SweptPostsTotal      prometheus.Counter
}

// NewCheckerMetrics creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production.
func NewCheckerMetrics(reg prometheus.Registerer) *CheckerMetrics {
	factory := promauto.With(reg)
	platform := []string{"platform"}
	return &CheckerMetrics{
		CyclesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_cycles_total",
			Help: "Total check cycles by platform and status (success/failure)",
		}, []string{"platform", "status"}),

		CycleDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "postwatch_cycle_duration_seconds",
			Help:    "Duration of check cycles in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, platform),

		ItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_items_total",
			Help: "Total candidate items seen across cycles",
		}, platform),

		NewItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_new_items_total",
			Help: "Total items recorded as new and dispatched",
		}, platform),

		DuplicateItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_duplicate_items_total",
			Help: "Total items already present in the dedup store",
		}, platform),

		FetchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_fetch_errors_total",
			Help: "Total per-link fetch failures",
		}, platform),

		StoreErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_store_errors_total",
			Help: "Total dedup store failures while recording items",
		}, platform),

		DispatchErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postwatch_dispatch_errors_total",
			Help: "Total notification delivery failures",
		}, platform),

		SweptPostsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "postwatch_swept_posts_total",
			Help: "Total dedup records removed by retention sweeps",
		}),
	}
}

// ObserveCycle implements check.CycleObserver.
func (m *CheckerMetrics) ObserveCycle(platform string, stats *check.CycleStats, err error) {
	if err != nil {
		m.CyclesTotal.WithLabelValues(platform, "failure").Inc()
		return
	}
	m.CyclesTotal.WithLabelValues(platform, "success").Inc()
	m.CycleDurationSeconds.WithLabelValues(platform).Observe(stats.Duration.Seconds())
	m.ItemsTotal.WithLabelValues(platform).Add(float64(stats.Items))
	m.NewItemsTotal.WithLabelValues(platform).Add(float64(stats.NewItems))
	m.DuplicateItemsTotal.WithLabelValues(platform).Add(float64(stats.Duplicates))
	m.FetchErrorsTotal.WithLabelValues(platform).Add(float64(stats.FetchErrors))
	m.StoreErrorsTotal.WithLabelValues(platform).Add(float64(stats.StoreErrors))
	m.DispatchErrorsTotal.WithLabelValues(platform).Add(float64(stats.DispatchErrors))
}

// RecordSweep adds the result of one retention sweep.
func (m *CheckerMetrics) RecordSweep(deleted int64) {
	m.SweptPostsTotal.Add(float64(deleted))
}
