package mock

import (
	"context"

	"github.com/fwojciec/sitemark"
)

var _ sitemark.GroupService = (*GroupService)(nil)

// GroupService is a mock implementation of sitemark.GroupService.
type GroupService struct {
	CreateGroupFn   func(ctx context.Context, group *sitemark.Group) error
	FindGroupByIDFn func(ctx context.Context, id string) (*sitemark.Group, error)
	FindGroupsFn    func(ctx context.Context, filter sitemark.GroupFilter) ([]*sitemark.Group, error)
	DeleteGroupFn   func(ctx context.Context, id string) error
}

func (s *GroupService) CreateGroup(ctx context.Context, group *sitemark.Group) error {
	return s.CreateGroupFn(ctx, group)
}

func (s *GroupService) FindGroupByID(ctx context.Context, id string) (*sitemark.Group, error) {
	return s.FindGroupByIDFn(ctx, id)
}

func (s *GroupService) FindGroups(ctx context.Context, filter sitemark.GroupFilter) ([]*sitemark.Group, error) {
	return s.FindGroupsFn(ctx, filter)
}

func (s *GroupService) DeleteGroup(ctx context.Context, id string) error {
	return s.DeleteGroupFn(ctx, id)
}
