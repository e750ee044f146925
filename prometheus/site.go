package prometheus

import (
	"github.com/fwojciec/sitemark"
)

// InstrumentedSite wraps a loaded site and counts the queries served.
type InstrumentedSite struct {
	site    *sitemark.Site
	metrics *Metrics
}

// NewInstrumentedSite creates a new InstrumentedSite.
func NewInstrumentedSite(site *sitemark.Site, m *Metrics) *InstrumentedSite {
	return &InstrumentedSite{site: site, metrics: m}
}

// Resolve delegates to the site and records where the path was found.
func (s *InstrumentedSite) Resolve(path string) (*sitemark.Resolution, bool) {
	res, ok := s.site.Resolve(path)
	source := SourceMiss
	switch {
	case ok && res.Dynamic:
		source = SourceDynamic
	case ok:
		source = SourceSitemap
	}
	s.metrics.ResolutionsTotal.WithLabelValues(source).Inc()
	return res, ok
}

// Readers delegates to the site.
func (s *InstrumentedSite) Readers(path string) ([]*sitemark.Group, bool) {
	s.metrics.AccessQueriesTotal.WithLabelValues("readers").Inc()
	return s.site.Readers(path)
}

// Writers delegates to the site.
func (s *InstrumentedSite) Writers(path string) []*sitemark.Group {
	s.metrics.AccessQueriesTotal.WithLabelValues("writers").Inc()
	return s.site.Writers(path)
}

// Site returns the wrapped site.
func (s *InstrumentedSite) Site() *sitemark.Site {
	return s.site
}
