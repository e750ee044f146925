package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/sitemark"
)

// Compile-time interface verification.
var _ sitemark.IDService = (*IDService)(nil)

// IDService implements sitemark.IDService using SQLite.
type IDService struct {
	db *DB
}

// NewIDService creates a new IDService.
func NewIDService(db *DB) *IDService {
	return &IDService{db: db}
}

// SetID registers anchor for pkg, replacing any previous URL.
func (s *IDService) SetID(ctx context.Context, pkg, anchor, url string) error {
	if pkg == "" || anchor == "" || url == "" {
		return sitemark.Errorf(sitemark.EINVALID, "package, anchor and url are required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_ids (package, anchor, url, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (package, anchor) DO UPDATE SET url = excluded.url, updated_at = excluded.updated_at
	`, pkg, anchor, url, time.Now().UTC().Format(time.RFC3339))
	return err
}

// FindIDs returns every anchor registered for pkg.
func (s *IDService) FindIDs(ctx context.Context, pkg string) (sitemark.GlobalIDs, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT anchor, url FROM global_ids WHERE package = ?", pkg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := sitemark.GlobalIDs{}
	for rows.Next() {
		var anchor, url string
		if err := rows.Scan(&anchor, &url); err != nil {
			return nil, err
		}
		ids[anchor] = url
	}
	return ids, rows.Err()
}

// DeleteID removes an anchor.
func (s *IDService) DeleteID(ctx context.Context, pkg, anchor string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM global_ids WHERE package = ? AND anchor = ?", pkg, anchor)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitemark.Errorf(sitemark.ENOTFOUND, "id %q not found", anchor)
	}
	return nil
}
