package mock

import (
	"context"

	"github.com/fwojciec/sitemark"
)

var _ sitemark.IDService = (*IDService)(nil)

// IDService is a mock implementation of sitemark.IDService.
type IDService struct {
	SetIDFn    func(ctx context.Context, pkg, anchor, url string) error
	FindIDsFn  func(ctx context.Context, pkg string) (sitemark.GlobalIDs, error)
	DeleteIDFn func(ctx context.Context, pkg, anchor string) error
}

func (s *IDService) SetID(ctx context.Context, pkg, anchor, url string) error {
	return s.SetIDFn(ctx, pkg, anchor, url)
}

func (s *IDService) FindIDs(ctx context.Context, pkg string) (sitemark.GlobalIDs, error) {
	return s.FindIDsFn(ctx, pkg)
}

func (s *IDService) DeleteID(ctx context.Context, pkg, anchor string) error {
	return s.DeleteIDFn(ctx, pkg, anchor)
}
