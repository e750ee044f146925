package mock

import (
	"context"

	"github.com/fwojciec/sitemark"
)

var _ sitemark.FileResolver = (*FileResolver)(nil)

// FileResolver is a mock implementation of sitemark.FileResolver.
type FileResolver struct {
	ResolveDocumentIDFn func(ctx context.Context, pkg *sitemark.Package, id string) (string, error)
	ResolveInRootFn     func(ctx context.Context, root, id string) (string, error)
}

func (r *FileResolver) ResolveDocumentID(ctx context.Context, pkg *sitemark.Package, id string) (string, error) {
	return r.ResolveDocumentIDFn(ctx, pkg, id)
}

func (r *FileResolver) ResolveInRoot(ctx context.Context, root, id string) (string, error) {
	return r.ResolveInRootFn(ctx, root, id)
}
