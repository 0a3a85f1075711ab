package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/bdf/cockpit/internal/database/repository"
)

func TestToggleRouteModeRequiresActiveCourier(t *testing.T) {
	store := newFakeStore()
	store.couriers = []repository.Courier{{ID: 1, Name: "Carlos", Active: false}}
	c, _ := newTestCockpit(t, store)
	ctx := context.Background()

	if err := c.ToggleRouteMode(ctx); !errors.Is(err, ErrNoCourierAvailable) {
		t.Fatalf("got %v, want ErrNoCourierAvailable", err)
	}
	if c.RouteModeActive() {
		t.Fatal("route mode armed with no active courier")
	}

	store.couriers[0].Active = true
	if err := c.ToggleRouteMode(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !c.RouteModeActive() {
		t.Fatal("route mode should be armed")
	}

	if err := c.ToggleRouteMode(ctx); err != nil {
		t.Fatalf("disarm: %v", err)
	}
	if c.RouteModeActive() {
		t.Fatal("route mode should be disarmed")
	}
}

func TestEnterRouteModeDispatchesLowestActiveCourier(t *testing.T) {
	store := newFakeStore(order(1, repository.StatusReadyForDispatch, repository.ChannelDelivery))
	store.couriers = []repository.Courier{
		{ID: 7, Name: "Maya", Active: true},
		{ID: 3, Name: "Renan", Active: true},
		{ID: 1, Name: "Carlos", Active: false},
	}
	c, _ := newTestCockpit(t, store)
	ctx := context.Background()

	rd, err := c.EnterRouteMode(ctx, 1)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if rd.Kind != RedrawSingleCard || rd.OrderID != 1 {
		t.Fatalf("got %+v, want SingleCard(1)", rd)
	}

	got := store.orders[1]
	if got.Status != repository.StatusEnRoute {
		t.Errorf("status = %s, want EN_ROUTE", got.Status)
	}
	// Lowest active id wins; inactive #1 is skipped.
	if got.CourierID == nil || *got.CourierID != 3 {
		t.Errorf("courier = %v, want 3", got.CourierID)
	}
	if store.loads[3] != 1 {
		t.Errorf("courier load delta = %d, want 1", store.loads[3])
	}
}

func TestEnterRouteModeBalcaoAlwaysLocked(t *testing.T) {
	store := newFakeStore(order(1, repository.StatusReadyForDispatch, repository.ChannelBalcao))
	store.couriers = []repository.Courier{{ID: 1, Name: "Carlos", Active: true}}
	c, _ := newTestCockpit(t, store)

	// The lock must fire before courier availability is even considered.
	_, err := c.EnterRouteMode(context.Background(), 1)
	if !errors.Is(err, ErrChannelLocked) {
		t.Fatalf("got %v, want ErrChannelLocked", err)
	}
	if got := store.orders[1].Status; got != repository.StatusReadyForDispatch {
		t.Errorf("status changed to %s on a locked dispatch", got)
	}

	// Still locked with an empty roster: the channel check wins.
	store.couriers = nil
	if _, err := c.EnterRouteMode(context.Background(), 1); !errors.Is(err, ErrChannelLocked) {
		t.Fatalf("empty roster: got %v, want ErrChannelLocked", err)
	}
}

func TestEnterRouteModeRequiresReadyForDispatch(t *testing.T) {
	statuses := []repository.Status{
		repository.StatusReceived,
		repository.StatusPreparing,
		repository.StatusEnRoute,
	}
	for _, st := range statuses {
		store := newFakeStore(order(1, st, repository.ChannelDelivery))
		store.couriers = []repository.Courier{{ID: 1, Name: "Carlos", Active: true}}
		c, _ := newTestCockpit(t, store)

		_, err := c.EnterRouteMode(context.Background(), 1)
		var inv *InvalidStateError
		if !errors.As(err, &inv) {
			t.Errorf("%s: got %v, want InvalidStateError", st, err)
		}
		if got := store.orders[1].Status; got != st {
			t.Errorf("%s: status mutated to %s", st, got)
		}
	}
}

func TestEnterRouteModeNoCourier(t *testing.T) {
	store := newFakeStore(order(1, repository.StatusReadyForDispatch, repository.ChannelWhatsApp))
	store.couriers = []repository.Courier{{ID: 1, Name: "Carlos", Active: false}}
	c, _ := newTestCockpit(t, store)

	_, err := c.EnterRouteMode(context.Background(), 1)
	if !errors.Is(err, ErrNoCourierAvailable) {
		t.Fatalf("got %v, want ErrNoCourierAvailable", err)
	}
	if got := store.orders[1].Status; got != repository.StatusReadyForDispatch {
		t.Errorf("status mutated to %s with no courier", got)
	}
}

func TestEnterIntentDispatchesWhileRouteModeArmed(t *testing.T) {
	store := newFakeStore(order(1, repository.StatusReadyForDispatch, repository.ChannelDelivery))
	store.couriers = []repository.Courier{{ID: 1, Name: "Carlos", Active: true}}
	c, _ := newTestCockpit(t, store)
	ctx := context.Background()

	if err := c.ToggleRouteMode(ctx); err != nil {
		t.Fatalf("arm: %v", err)
	}
	c.Nav().Select(1)

	rd, err := c.HandleIntent(ctx, IntentEnter)
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if rd.Kind != RedrawSingleCard {
		t.Fatalf("got %v, want SingleCard", rd.Kind)
	}
	if c.PanelState().IsOpen() {
		t.Error("route dispatch must not open the edit panel")
	}
	if got := store.orders[1].Status; got != repository.StatusEnRoute {
		t.Errorf("status = %s, want EN_ROUTE", got)
	}
}
