// Package metrics holds the Prometheus collectors of the remoteness engine.
// Collectors register on Registry, which the CLI dumps in text format.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Registry is the registry every collector of this package belongs to.
var Registry = prometheus.NewRegistry()

var (
	// SolveSeconds tracks field solve latency by mode.
	SolveSeconds = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remoteness_solve_seconds",
		Help:    "Accumulated field solve duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	}, []string{"mode"})

	// CellsSettled counts cells given a final value by mode.
	CellsSettled = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "remoteness_cells_settled_total",
		Help: "Total cells given a final accumulated value",
	}, []string{"mode"})

	// CacheRequests counts cache lookups by artefact kind and result (hit, miss, error).
	CacheRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "remoteness_cache_requests_total",
		Help: "Total cache lookups by artefact kind and result",
	}, []string{"kind", "result"})

	// UnknownLandCover counts cells whose land-cover code had no factor.
	UnknownLandCover = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "remoteness_unknown_landcover_cells_total",
		Help: "Total land-cover cells with a code missing from the factor table",
	})
)

// ObserveSolve records one finished solve.
func ObserveSolve(mode string, elapsed time.Duration, settled int) {
	SolveSeconds.WithLabelValues(mode).Observe(elapsed.Seconds())
	CellsSettled.WithLabelValues(mode).Add(float64(settled))
}

// WriteText writes every metric of Registry in the Prometheus text format.
func WriteText(w io.Writer) error {
	mfs, err := Registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
