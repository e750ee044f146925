package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitemark"
	"github.com/fwojciec/sitemark/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestGroupService_CreateGroup(t *testing.T) {
	t.Parallel()

	t.Run("creates group with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))
		group := &sitemark.Group{Name: "staff", Package: "acme", Members: []string{"bob", "alice"}}

		err := svc.CreateGroup(context.Background(), group)

		require.NoError(t, err)
		assert.NotEmpty(t, group.ID)
		assert.False(t, group.CreatedAt.IsZero())
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))

		err := svc.CreateGroup(context.Background(), &sitemark.Group{Name: "no spaces", Package: "acme"})

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALIDUSERGROUP, sitemark.ErrorCode(err))
	})

	t.Run("rejects duplicates within a package", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateGroup(ctx, &sitemark.Group{Name: "staff", Package: "acme"}))
		require.NoError(t, svc.CreateGroup(ctx, &sitemark.Group{Name: "staff", Package: "other"}))

		err := svc.CreateGroup(ctx, &sitemark.Group{Name: "staff", Package: "acme"})

		require.Error(t, err)
		assert.Equal(t, sitemark.EINVALIDUSERGROUP, sitemark.ErrorCode(err))
		assert.Equal(t, "staff", sitemark.ErrorRow(err))
	})
}

func TestGroupService_FindGroupByID(t *testing.T) {
	t.Parallel()

	t.Run("returns group with members in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))
		ctx := context.Background()
		group := &sitemark.Group{Name: "staff", Title: "Staff", Package: "acme", Members: []string{"bob", "alice"}}
		require.NoError(t, svc.CreateGroup(ctx, group))

		found, err := svc.FindGroupByID(ctx, group.ID)

		require.NoError(t, err)
		assert.Equal(t, group.ID, found.ID)
		assert.Equal(t, "staff", found.Name)
		assert.Equal(t, "Staff", found.Title)
		assert.Equal(t, "acme", found.Package)
		assert.Equal(t, []string{"bob", "alice"}, found.Members)
		assert.True(t, group.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))

		_, err := svc.FindGroupByID(context.Background(), "nonexistent-id")

		require.Error(t, err)
		assert.Equal(t, sitemark.ENOTFOUND, sitemark.ErrorCode(err))
	})
}

func TestGroupService_FindGroups(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewGroupService(setupTestDB(t))
	ctx := context.Background()
	for _, g := range []*sitemark.Group{
		{Name: "writers", Package: "acme", Members: []string{"carol"}},
		{Name: "staff", Package: "acme"},
		{Name: "staff", Package: "other"},
	} {
		require.NoError(t, svc.CreateGroup(ctx, g))
	}

	t.Run("empty filter returns everything ordered", func(t *testing.T) {
		t.Parallel()

		groups, err := svc.FindGroups(ctx, sitemark.GroupFilter{})

		require.NoError(t, err)
		require.Len(t, groups, 3)
		assert.Equal(t, "staff", groups[0].Name)
		assert.Equal(t, "acme", groups[0].Package)
		assert.Equal(t, "writers", groups[1].Name)
		assert.Equal(t, []string{"carol"}, groups[1].Members)
		assert.Equal(t, "other", groups[2].Package)
	})

	t.Run("filters by package and name", func(t *testing.T) {
		t.Parallel()

		groups, err := svc.FindGroups(ctx, sitemark.GroupFilter{Package: ptr("other"), Name: ptr("staff")})

		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "other", groups[0].Package)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		groups, err := svc.FindGroups(ctx, sitemark.GroupFilter{Offset: 1})
		require.NoError(t, err)
		assert.Len(t, groups, 2)

		groups, err = svc.FindGroups(ctx, sitemark.GroupFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "writers", groups[0].Name)
	})

	t.Run("registry lookup by name", func(t *testing.T) {
		t.Parallel()

		groups, err := svc.FindGroups(ctx, sitemark.GroupFilter{Package: ptr("acme")})
		require.NoError(t, err)

		g, ok := sitemark.NewGroups(groups).FindGroup("writers")
		require.True(t, ok)
		assert.Equal(t, []string{"carol"}, g.Members)
	})
}

func TestGroupService_DeleteGroup(t *testing.T) {
	t.Parallel()

	t.Run("removes group and memberships", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()
		group := &sitemark.Group{Name: "staff", Package: "acme", Members: []string{"bob"}}
		require.NoError(t, svc.CreateGroup(ctx, group))

		require.NoError(t, svc.DeleteGroup(ctx, group.ID))

		_, err := svc.FindGroupByID(ctx, group.ID)
		assert.Equal(t, sitemark.ENOTFOUND, sitemark.ErrorCode(err))
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM group_members").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewGroupService(setupTestDB(t))

		err := svc.DeleteGroup(context.Background(), "nonexistent-id")

		require.Error(t, err)
		assert.Equal(t, sitemark.ENOTFOUND, sitemark.ErrorCode(err))
	})
}
