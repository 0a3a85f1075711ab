package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// CourierRepo handles couriers.
type CourierRepo struct {
	db *sql.DB
}

func NewCourierRepo(db *sql.DB) *CourierRepo { return &CourierRepo{db: db} }

func (r *CourierRepo) Insert(ctx context.Context, c Courier) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO couriers(name, active, load_count) VALUES(?, ?, ?)`,
		c.Name, c.Active, c.LoadCount)
	if err != nil {
		return 0, fmt.Errorf("insert courier: %w", err)
	}
	return res.LastInsertId()
}

// List returns all couriers ordered by ascending id. Route Mode relies on this
// ordering for deterministic pre-selection.
func (r *CourierRepo) List(ctx context.Context) ([]Courier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, active, load_count FROM couriers ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list couriers: %w", err)
	}
	defer rows.Close()

	var out []Courier
	for rows.Next() {
		var c Courier
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.LoadCount); err != nil {
			return nil, fmt.Errorf("scan courier: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CourierRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE couriers SET active = ? WHERE id = ?`, active, id)
	return err
}

// AddLoad adjusts a courier's load counter. The MAX guard keeps the count from
// ever going negative, whatever order the decrements arrive in.
func (r *CourierRepo) AddLoad(ctx context.Context, id int64, delta int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE couriers SET load_count = MAX(load_count + ?, 0) WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust courier %d load: %w", id, err)
	}
	return nil
}
