package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/sitemark"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitemark.GroupService = (*GroupService)(nil)

// GroupService implements sitemark.GroupService using SQLite.
type GroupService struct {
	db *DB
}

// NewGroupService creates a new GroupService.
func NewGroupService(db *DB) *GroupService {
	return &GroupService{db: db}
}

// CreateGroup creates a new group with its members. A group name is unique
// within a package.
func (s *GroupService) CreateGroup(ctx context.Context, group *sitemark.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	group.ID = uuid.New().String()
	group.CreatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_groups WHERE package = ? AND name = ?",
		group.Package, group.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return sitemark.UserGroupError(group.Package, "group already exists", group.Name)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_groups (id, package, name, title, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, group.ID, group.Package, group.Name, group.Title, group.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, m := range group.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO group_members (group_id, member, position) VALUES (?, ?, ?)
		`, group.ID, m, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindGroupByID retrieves a group by ID.
func (s *GroupService) FindGroupByID(ctx context.Context, id string) (*sitemark.Group, error) {
	var group sitemark.Group
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, package, name, title, created_at
		FROM user_groups
		WHERE id = ?
	`, id).Scan(&group.ID, &group.Package, &group.Name, &group.Title, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitemark.Errorf(sitemark.ENOTFOUND, "group not found")
	}
	if err != nil {
		return nil, err
	}

	if group.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if group.Members, err = s.members(ctx, group.ID); err != nil {
		return nil, err
	}
	return &group, nil
}

// FindGroups retrieves groups matching the filter, ordered by package and name.
func (s *GroupService) FindGroups(ctx context.Context, filter sitemark.GroupFilter) ([]*sitemark.Group, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, package, name, title, created_at FROM user_groups WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Package != nil {
		query.WriteString(" AND package = ?")
		args = append(args, *filter.Package)
	}

	query.WriteString(" ORDER BY package, name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var groups []*sitemark.Group
	for rows.Next() {
		var group sitemark.Group
		var createdAt string
		if err := rows.Scan(&group.ID, &group.Package, &group.Name, &group.Title, &createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		if group.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			rows.Close()
			return nil, err
		}
		groups = append(groups, &group)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Members are loaded after closing rows: the pool holds one connection.
	rows.Close()

	for _, g := range groups {
		if g.Members, err = s.members(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// DeleteGroup permanently removes a group and its memberships.
func (s *GroupService) DeleteGroup(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM user_groups WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitemark.Errorf(sitemark.ENOTFOUND, "group not found")
	}
	return nil
}

func (s *GroupService) members(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member FROM group_members WHERE group_id = ? ORDER BY position", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
