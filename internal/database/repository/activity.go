package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ActivityRepo handles the append-only activity log.
type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) Insert(ctx context.Context, e ActivityEvent) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO activity_log(id, order_id, action, from_status, to_status, operator, created_at)
	VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		e.ID, e.OrderID, e.Action, e.FromStatus, e.ToStatus, e.Operator)
	if err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

// Recent returns the newest events first, capped at limit.
func (r *ActivityRepo) Recent(ctx context.Context, limit int) ([]ActivityEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, order_id, action, from_status, to_status, operator, created_at
	FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityEvent
	for rows.Next() {
		var e ActivityEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Action, &e.FromStatus, &e.ToStatus, &e.Operator, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
