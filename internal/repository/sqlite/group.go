package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/bucketlist/internal/apperror"
	"github.com/sakif/bucketlist/internal/model"
	"github.com/sakif/bucketlist/internal/repository"
)

// compile-time check that *DB implements repository.GroupRepository
var _ repository.GroupRepository = (*DB)(nil)

// CreateGroup inserts a new group. Group names are globally unique; a
// collision maps to apperror.ErrConflict the same way user registration does.
func (db *DB) CreateGroup(ctx context.Context, group *model.Group) error {
	group.ID = xid.New().String()
	group.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)`,
		group.ID,
		group.Name,
		group.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("group name already exists")
		}
		return fmt.Errorf("sqlite: creating group %q: %w", group.Name, err)
	}

	return nil
}

// GetGroupByID retrieves a group by ID.
func (db *DB) GetGroupByID(ctx context.Context, id string) (*model.Group, error) {
	var g model.Group

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM groups WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("group", id)
		}
		return nil, fmt.Errorf("sqlite: getting group %s: %w", id, err)
	}

	return &g, nil
}

// ListGroups retrieves all groups, alphabetically.
func (db *DB) ListGroups(ctx context.Context) ([]model.Group, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, created_at FROM groups ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing groups: %w", err)
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating groups: %w", err)
	}

	return groups, nil
}
