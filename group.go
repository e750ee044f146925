package sitemark

import (
	"context"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var groupNameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]*$`)

// Group is a named set of users that access rules refer to.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Package   string    `json:"package"`
	Members   []string  `json:"members,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an EINVALIDUSERGROUP error if the group declaration is invalid.
func (g *Group) Validate() error {
	err := validation.ValidateStruct(g,
		validation.Field(&g.Name, validation.Required, validation.Match(groupNameRe)),
		validation.Field(&g.Members, validation.Each(validation.Required)),
	)
	if err != nil {
		return UserGroupError(g.Package, err.Error(), g.Name)
	}
	return nil
}

// GroupRegistry resolves group names declared in the sitemap.
type GroupRegistry interface {
	FindGroup(name string) (*Group, bool)
}

// Groups is an in-memory GroupRegistry keyed by group name.
type Groups map[string]*Group

// FindGroup returns the group called name.
func (m Groups) FindGroup(name string) (*Group, bool) {
	g, ok := m[name]
	return g, ok
}

// NewGroups indexes groups by name. Later duplicates win.
func NewGroups(groups []*Group) Groups {
	m := make(Groups, len(groups))
	for _, g := range groups {
		m[g.Name] = g
	}
	return m
}

// GroupService represents a service for managing user groups.
type GroupService interface {
	// CreateGroup creates a new group.
	CreateGroup(ctx context.Context, group *Group) error

	// FindGroupByID retrieves a group by ID.
	// Returns ENOTFOUND if group does not exist.
	FindGroupByID(ctx context.Context, id string) (*Group, error)

	// FindGroups retrieves groups matching the filter.
	FindGroups(ctx context.Context, filter GroupFilter) ([]*Group, error)

	// DeleteGroup permanently removes a group.
	// Returns ENOTFOUND if group does not exist.
	DeleteGroup(ctx context.Context, id string) error
}

// GroupFilter represents a filter for FindGroups.
type GroupFilter struct {
	ID      *string `json:"id"`
	Name    *string `json:"name"`
	Package *string `json:"package"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// IDService represents a service for managing the global id map of a package.
type IDService interface {
	// SetID registers or replaces the URL of an anchor.
	SetID(ctx context.Context, pkg, anchor, url string) error

	// FindIDs returns every anchor registered for pkg.
	FindIDs(ctx context.Context, pkg string) (GlobalIDs, error)

	// DeleteID removes an anchor.
	// Returns ENOTFOUND if the anchor does not exist.
	DeleteID(ctx context.Context, pkg, anchor string) error
}
