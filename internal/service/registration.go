package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bdf/cockpit/internal/database/repository"
)

// RegistrationService backs the quick order form.
type RegistrationService struct {
	Orders        *repository.OrderRepo
	Neighborhoods *repository.NeighborhoodRepo
	Activity      *ActivityLogger
}

// RegistrationInput is what the form collects.
type RegistrationInput struct {
	Customer      string
	Channel       repository.Channel
	Neighborhood  string
	ProductsValue float64
	DeliveryFee   float64
	Payment       repository.Payment
	Note          string
}

// Create registers a new order. BALCÃO orders always get a zero delivery fee;
// PIX orders start with the payment unconfirmed. Returns the new order id.
func (s *RegistrationService) Create(ctx context.Context, in RegistrationInput) (int64, error) {
	customer := strings.TrimSpace(in.Customer)
	if customer == "" {
		customer = "Cliente"
	}
	if in.ProductsValue < 0 || in.DeliveryFee < 0 {
		return 0, fmt.Errorf("register order: negative value")
	}

	fee := in.DeliveryFee
	if in.Channel == repository.ChannelBalcao {
		fee = 0
	}

	var hoodID *int64
	if name := strings.TrimSpace(in.Neighborhood); name != "" && s.Neighborhoods != nil {
		hood, err := s.Neighborhoods.ByName(ctx, name)
		if err != nil {
			return 0, err
		}
		if hood != nil {
			hoodID = &hood.ID
			if in.DeliveryFee == 0 && in.Channel != repository.ChannelBalcao {
				fee = hood.Fee
			}
		}
	}

	o := repository.Order{
		Customer:       customer,
		Channel:        in.Channel,
		Status:         repository.StatusReceived,
		NeighborhoodID: hoodID,
		Payment:        in.Payment,
		PixConfirmed:   in.Payment != repository.PaymentPix,
		ProductsValue:  in.ProductsValue,
		DeliveryFee:    fee,
		TotalValue:     in.ProductsValue + fee,
		Note:           strings.TrimSpace(in.Note),
	}

	id, err := s.Orders.Insert(ctx, o)
	if err != nil {
		return 0, fmt.Errorf("register order: %w", err)
	}
	if s.Activity != nil {
		s.Activity.Record(ctx, repository.ActivityEvent{
			OrderID:  &id,
			Action:   "register order",
			ToStatus: repository.StatusReceived,
		})
	}
	return id, nil
}
