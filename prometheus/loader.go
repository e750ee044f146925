package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/sitemark"
)

// Ensure InstrumentedLoader implements sitemark.Loader.
var _ sitemark.Loader = (*InstrumentedLoader)(nil)

// InstrumentedLoader counts loads by outcome and observes their duration.
// The outcome label is "ok" or the error code of the failure.
type InstrumentedLoader struct {
	next    sitemark.Loader
	metrics *Metrics
}

// NewInstrumentedLoader creates a new InstrumentedLoader.
func NewInstrumentedLoader(next sitemark.Loader, m *Metrics) *InstrumentedLoader {
	return &InstrumentedLoader{next: next, metrics: m}
}

// Load delegates to the wrapped loader.
func (l *InstrumentedLoader) Load(ctx context.Context, pkg *sitemark.Package) (site *sitemark.Site, err error) {
	defer func(begin time.Time) {
		l.metrics.LoadDuration.Observe(time.Since(begin).Seconds())
		outcome := "ok"
		if err != nil {
			outcome = sitemark.ErrorCode(err)
		}
		l.metrics.LoadsTotal.WithLabelValues(outcome).Inc()
	}(time.Now())
	return l.next.Load(ctx, pkg)
}
