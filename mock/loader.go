package mock

import (
	"context"

	"github.com/fwojciec/sitemark"
)

var _ sitemark.Loader = (*Loader)(nil)

// Loader is a mock implementation of sitemark.Loader.
type Loader struct {
	LoadFn func(ctx context.Context, pkg *sitemark.Package) (*sitemark.Site, error)
}

func (l *Loader) Load(ctx context.Context, pkg *sitemark.Package) (*sitemark.Site, error) {
	return l.LoadFn(ctx, pkg)
}
