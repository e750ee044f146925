// Package prometheus instruments sitemark services with Prometheus metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution sources recorded by InstrumentedSite.
const (
	SourceSitemap = "sitemap"
	SourceDynamic = "dynamic"
	SourceMiss    = "miss"
)

// Metrics holds the sitemark collectors registered on one registry.
type Metrics struct {
	LoadsTotal         *prometheus.CounterVec
	LoadDuration       prometheus.Histogram
	ResolutionsTotal   *prometheus.CounterVec
	AccessQueriesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemark_loads_total",
				Help: "Total number of package loads by outcome",
			},
			[]string{"outcome"},
		),
		LoadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitemark_load_duration_seconds",
				Help:    "Duration of package loads in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemark_resolutions_total",
				Help: "Total number of path resolutions by source",
			},
			[]string{"source"},
		),
		AccessQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemark_access_queries_total",
				Help: "Total number of readers and writers queries",
			},
			[]string{"kind"},
		),
	}
}
