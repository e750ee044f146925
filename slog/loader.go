// Package slog provides log/slog decorators for sitemark services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemark"
)

// Ensure LoggingLoader implements sitemark.Loader.
var _ sitemark.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging.
type LoggingLoader struct {
	next   sitemark.Loader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next sitemark.Loader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the outcome.
func (l *LoggingLoader) Load(ctx context.Context, pkg *sitemark.Package) (site *sitemark.Site, err error) {
	defer func(begin time.Time) {
		var sections, routes int
		if site != nil {
			if site.Sitemap != nil {
				sections = len(site.Sitemap.Sections)
			}
			if site.DynamicURLs != nil {
				routes = len(site.DynamicURLs.Routes)
			}
		}
		attrs := []any{
			"package", pkg.Name,
			"sections", sections,
			"routes", routes,
			"duration", time.Since(begin),
			"err", err,
		}
		if row := sitemark.ErrorRow(err); row != "" {
			attrs = append(attrs, "row", row)
		}
		l.logger.Info("sitemap load", attrs...)
	}(time.Now())
	return l.next.Load(ctx, pkg)
}
