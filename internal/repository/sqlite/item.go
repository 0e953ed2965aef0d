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

// compile-time check that *DB implements repository.ItemRepository
var _ repository.ItemRepository = (*DB)(nil)

// CreateItem inserts a new bucket list item. The caller must have set UserID;
// ID and CreatedAt are generated here and written back through the pointer.
func (db *DB) CreateItem(ctx context.Context, item *model.BucketListItem) error {
	item.ID = xid.New().String()
	item.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO items (id, name, description, completion_date, created_at, user_id, group_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Description,
		nullTime(item.CompletionDate),
		item.CreatedAt,
		item.UserID,
		nullString(item.GroupID),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating item: %w", err)
	}

	return nil
}

// GetItemByID retrieves a single item owned by userID.
//
// The WHERE clause filters on BOTH id and user_id. An item that exists but
// belongs to someone else scans zero rows and comes back as NotFound — a
// user can't probe other people's item IDs apart from nonexistent ones.
func (db *DB) GetItemByID(ctx context.Context, id, userID string) (*model.BucketListItem, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, completion_date, created_at, user_id, group_id
		 FROM items
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("item", id)
		}
		return nil, fmt.Errorf("sqlite: getting item %s: %w", id, err)
	}

	return item, nil
}

// ListItemsByUser retrieves all items owned by userID, newest first.
func (db *DB) ListItemsByUser(ctx context.Context, userID string) ([]model.BucketListItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, completion_date, created_at, user_id, group_id
		 FROM items
		 WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListItemsByGroup retrieves all items assigned to a group, regardless of owner.
// This backs the shared group view, which is intentionally cross-user.
func (db *DB) ListItemsByGroup(ctx context.Context, groupID string) ([]model.BucketListItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, completion_date, created_at, user_id, group_id
		 FROM items
		 WHERE group_id = ?
		 ORDER BY created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items for group %s: %w", groupID, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateItem overwrites the mutable fields of an item: name, description,
// completion_date, and group assignment. ID, created_at, and user_id are
// immutable after creation — they never appear in the SET clause.
//
// The WHERE clause is owner-scoped like GetByID, and RowsAffected detects
// "not found" without a separate SELECT.
func (db *DB) UpdateItem(ctx context.Context, item *model.BucketListItem) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE items
		 SET name = ?, description = ?, completion_date = ?, group_id = ?
		 WHERE id = ? AND user_id = ?`,
		item.Name,
		item.Description,
		nullTime(item.CompletionDate),
		nullString(item.GroupID),
		item.ID,
		item.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating item %s: %w", item.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("item", item.ID)
	}

	return nil
}

// DeleteItem removes an item owned by userID. Same RowsAffected pattern as
// Update for the not-found case.
func (db *DB) DeleteItem(ctx context.Context, id, userID string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting item %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("item", id)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row, converting the nullable columns
// (completion_date, group_id) into pointer fields.
func scanItem(s scanner) (*model.BucketListItem, error) {
	var (
		item           model.BucketListItem
		completionDate sql.NullTime
		groupID        sql.NullString
	)

	if err := s.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&completionDate,
		&item.CreatedAt,
		&item.UserID,
		&groupID,
	); err != nil {
		return nil, err
	}

	if completionDate.Valid {
		item.CompletionDate = &completionDate.Time
	}
	if groupID.Valid {
		item.GroupID = &groupID.String
	}

	return &item, nil
}

func collectItems(rows *sql.Rows) ([]model.BucketListItem, error) {
	items := []model.BucketListItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating items: %w", err)
	}
	return items, nil
}

// nullTime converts *time.Time to the driver's nullable representation.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
