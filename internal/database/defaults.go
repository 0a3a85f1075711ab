package database

import (
	"context"
	"database/sql"

	"github.com/bdf/cockpit/internal/database/repository"
)

// SeedDefaults ensures a fresh database has couriers, neighborhoods and a
// couple of orders to land on. It is idempotent and safe to run on every
// startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	courierRepo := repository.NewCourierRepo(db)
	hoodRepo := repository.NewNeighborhoodRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	couriers, err := courierRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		for _, name := range []string{"Carlos", "Renan", "Maya"} {
			if _, err := courierRepo.Insert(ctx, repository.Courier{Name: name, Active: true}); err != nil {
				return err
			}
		}
	}

	hoods, err := hoodRepo.List(ctx)
	if err != nil {
		return err
	}
	hoodID := map[string]int64{}
	if len(hoods) == 0 {
		for _, h := range []repository.Neighborhood{
			{Name: "Centro", Fee: 5},
			{Name: "Jardim", Fee: 8},
			{Name: "Industrial", Fee: 10},
		} {
			id, err := hoodRepo.Insert(ctx, h)
			if err != nil {
				return err
			}
			hoodID[h.Name] = id
		}
	} else {
		for _, h := range hoods {
			hoodID[h.Name] = h.ID
		}
	}

	count, err := orderRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	centro := hoodID["Centro"]
	samples := []repository.Order{
		{
			Customer:       "Ana Souza",
			Channel:        repository.ChannelWhatsApp,
			Status:         repository.StatusReceived,
			NeighborhoodID: &centro,
			Payment:        repository.PaymentPix,
			PixConfirmed:   false,
			ProductsValue:  42,
			DeliveryFee:    5,
			TotalValue:     47,
			Note:           "Sem cebola",
		},
		{
			Customer:       "Marcos Lima",
			Channel:        repository.ChannelBalcao,
			Status:         repository.StatusReceived,
			NeighborhoodID: &centro,
			Payment:        repository.PaymentOnPickup,
			PixConfirmed:   true,
			ProductsValue:  25,
			TotalValue:     25,
		},
	}
	for _, o := range samples {
		if _, err := orderRepo.Insert(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
