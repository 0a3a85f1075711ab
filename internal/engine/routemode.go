package engine

import (
	"context"

	"github.com/bdf/cockpit/internal/database/repository"
)

// Route Mode is the fast-dispatch flow: while active, confirming a card
// auto-assigns the first active courier and advances the order to EnRoute.

// RouteModeActive reports whether fast dispatch is armed.
func (c *Cockpit) RouteModeActive() bool { return c.routeActive }

// ToggleRouteMode arms or disarms fast dispatch. Arming requires at least one
// active courier, so the operator learns about an empty roster before picking
// a card rather than after.
func (c *Cockpit) ToggleRouteMode(ctx context.Context) error {
	if c.routeActive {
		c.routeActive = false
		return nil
	}
	couriers, err := c.store.LoadCouriers(ctx)
	if err != nil {
		return &StoreError{Op: "load couriers", Err: err}
	}
	if firstActive(couriers) == nil {
		return ErrNoCourierAvailable
	}
	c.routeActive = true
	return nil
}

// EnterRouteMode dispatches one order: it pre-selects the first active
// courier (ascending id, deterministic), assigns it, moves the order to
// EnRoute and persists. Every failure leaves the order untouched and emits no
// redraw.
func (c *Cockpit) EnterRouteMode(ctx context.Context, orderID int64) (Redraw, error) {
	o, ok := c.orders[orderID]
	if !ok {
		return None(), &InvalidStateError{OrderID: orderID, Op: "route dispatch"}
	}
	if o.Status != repository.StatusReadyForDispatch {
		return None(), &InvalidStateError{OrderID: orderID, Status: o.Status, Op: "route dispatch"}
	}

	switch o.Channel {
	case repository.ChannelBalcao:
		// Absolute lock: counter orders never enter a courier-dispatch flow.
		return None(), ErrChannelLocked
	case repository.ChannelDelivery, repository.ChannelApp,
		repository.ChannelWhatsApp, repository.ChannelIFood:
		// dispatchable
	default:
		return None(), &InvalidStateError{OrderID: orderID, Status: o.Status, Op: "route dispatch: unknown channel"}
	}

	couriers, err := c.store.LoadCouriers(ctx)
	if err != nil {
		return None(), &StoreError{Op: "load couriers", Err: err}
	}
	courier := firstActive(couriers)
	if courier == nil {
		return None(), ErrNoCourierAvailable
	}

	return c.mutate(ctx, orderID, "route dispatch", func(o *repository.Order) error {
		cid := courier.ID
		o.CourierID = &cid
		o.Status = repository.StatusEnRoute
		return nil
	})
}

// firstActive picks the active courier with the lowest id. The store lists
// couriers ascending already; the scan keeps the pick deterministic even if
// an adapter returns them unordered.
func firstActive(couriers []repository.Courier) *repository.Courier {
	var best *repository.Courier
	for i := range couriers {
		if !couriers[i].Active {
			continue
		}
		if best == nil || couriers[i].ID < best.ID {
			best = &couriers[i]
		}
	}
	return best
}
