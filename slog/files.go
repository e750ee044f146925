package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemark"
)

// Ensure LoggingFileResolver implements sitemark.FileResolver.
var _ sitemark.FileResolver = (*LoggingFileResolver)(nil)

// LoggingFileResolver wraps a FileResolver with debug logging.
type LoggingFileResolver struct {
	next   sitemark.FileResolver
	logger *slog.Logger
}

// NewLoggingFileResolver creates a new LoggingFileResolver.
func NewLoggingFileResolver(next sitemark.FileResolver, logger *slog.Logger) *LoggingFileResolver {
	return &LoggingFileResolver{next: next, logger: logger}
}

// ResolveDocumentID delegates to the wrapped resolver and logs the lookup.
func (r *LoggingFileResolver) ResolveDocumentID(ctx context.Context, pkg *sitemark.Package, id string) (path string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("document resolution",
			"package", pkg.Name,
			"id", id,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveDocumentID(ctx, pkg, id)
}

// ResolveInRoot delegates to the wrapped resolver and logs the lookup.
func (r *LoggingFileResolver) ResolveInRoot(ctx context.Context, root, id string) (path string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("document resolution",
			"root", root,
			"id", id,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveInRoot(ctx, root, id)
}
