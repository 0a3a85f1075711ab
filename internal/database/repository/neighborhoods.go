package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// NeighborhoodRepo handles delivery areas.
type NeighborhoodRepo struct {
	db *sql.DB
}

func NewNeighborhoodRepo(db *sql.DB) *NeighborhoodRepo { return &NeighborhoodRepo{db: db} }

func (r *NeighborhoodRepo) Insert(ctx context.Context, n Neighborhood) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO neighborhoods(name, fee) VALUES(?, ?)`, n.Name, n.Fee)
	if err != nil {
		return 0, fmt.Errorf("insert neighborhood: %w", err)
	}
	return res.LastInsertId()
}

func (r *NeighborhoodRepo) List(ctx context.Context) ([]Neighborhood, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, fee FROM neighborhoods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	defer rows.Close()

	var out []Neighborhood
	for rows.Next() {
		var n Neighborhood
		if err := rows.Scan(&n.ID, &n.Name, &n.Fee); err != nil {
			return nil, fmt.Errorf("scan neighborhood: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ByName looks a neighborhood up case-insensitively. Returns nil when absent.
func (r *NeighborhoodRepo) ByName(ctx context.Context, name string) (*Neighborhood, error) {
	var n Neighborhood
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, fee FROM neighborhoods WHERE LOWER(name) = ?`,
		strings.ToLower(strings.TrimSpace(name))).Scan(&n.ID, &n.Name, &n.Fee)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("neighborhood by name: %w", err)
	}
	return &n, nil
}
