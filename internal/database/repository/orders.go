package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// OrderFilters defines list filters.
type OrderFilters struct {
	ActiveOnly bool
	Channel    Channel
	CourierID  int64 // 0 = no courier filter
	Search     string
}

// OrderRepo handles orders.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, customer, channel, status, courier_id, neighborhood_id,
 payment, pix_confirmed, products_value, delivery_fee, total_value, note,
 created_at, updated_at`

func (r *OrderRepo) Insert(ctx context.Context, o Order) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO orders(
	 customer, channel, status, courier_id, neighborhood_id, payment,
	 pix_confirmed, products_value, delivery_fee, total_value, note,
	 created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		o.Customer, o.Channel, o.Status, o.CourierID, o.NeighborhoodID, o.Payment,
		o.PixConfirmed, o.ProductsValue, o.DeliveryFee, o.TotalValue, o.Note)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return res.LastInsertId()
}

// Save writes every mutable field of an existing order. Channel and the money
// columns are deliberately excluded; they never change after registration
// except through the note/courier/status paths below.
func (r *OrderRepo) Save(ctx context.Context, o Order) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE orders SET
	 status = ?, courier_id = ?, pix_confirmed = ?, payment = ?, note = ?,
	 updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`,
		o.Status, o.CourierID, o.PixConfirmed, o.Payment, o.Note, o.ID)
	if err != nil {
		return fmt.Errorf("save order %d: %w", o.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("save order %d: no such order", o.ID)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// List returns orders newest first (the cockpit's view order).
func (r *OrderRepo) List(ctx context.Context, f OrderFilters) ([]Order, error) {
	var where []string
	var args []interface{}

	if f.ActiveOnly {
		where = append(where, "status NOT IN (?, ?)")
		args = append(args, StatusDelivered, StatusCancelled)
	}
	if f.Channel != "" {
		where = append(where, "channel = ?")
		args = append(args, f.Channel)
	}
	if f.CourierID != 0 {
		where = append(where, "courier_id = ?")
		args = append(args, f.CourierID)
	}
	if f.Search != "" {
		where = append(where, "customer LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := "SELECT " + orderColumns + " FROM orders"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Customer, &o.Channel, &o.Status, &o.CourierID, &o.NeighborhoodID,
		&o.Payment, &o.PixConfirmed, &o.ProductsValue, &o.DeliveryFee, &o.TotalValue,
		&o.Note, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
