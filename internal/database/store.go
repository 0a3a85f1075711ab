package database

import (
	"context"

	"github.com/bdf/cockpit/internal/database/repository"
)

// Store adapts the order and courier repositories to the engine's store
// boundary: load the active partition, persist one order, list couriers.
type Store struct {
	Orders   *repository.OrderRepo
	Couriers *repository.CourierRepo
}

// LoadOrders returns the active (non-terminal) orders newest first.
func (s *Store) LoadOrders(ctx context.Context) ([]repository.Order, error) {
	return s.Orders.List(ctx, repository.OrderFilters{ActiveOnly: true})
}

func (s *Store) SaveOrder(ctx context.Context, o repository.Order) error {
	return s.Orders.Save(ctx, o)
}

func (s *Store) LoadCouriers(ctx context.Context) ([]repository.Courier, error) {
	return s.Couriers.List(ctx)
}

func (s *Store) AddCourierLoad(ctx context.Context, id int64, delta int) error {
	return s.Couriers.AddLoad(ctx, id, delta)
}
