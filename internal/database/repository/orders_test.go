package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bdf/cockpit/internal/database"
	"github.com/bdf/cockpit/internal/database/repository"
)

func openTestDB(t *testing.T) (*repository.OrderRepo, *repository.CourierRepo, *repository.NeighborhoodRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db, migrations))

	return repository.NewOrderRepo(db), repository.NewCourierRepo(db), repository.NewNeighborhoodRepo(db)
}

func TestOrderListActiveOnlyNewestFirst(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	orders, _, _ := openTestDB(t)

	mk := func(status repository.Status) int64 {
		id, err := orders.Insert(ctx, repository.Order{
			Customer: "Cliente",
			Channel:  repository.ChannelWhatsApp,
			Status:   status,
			Payment:  repository.PaymentCash,
		})
		require.NoError(t, err)
		return id
	}

	a := mk(repository.StatusReceived)
	b := mk(repository.StatusDelivered)
	c := mk(repository.StatusPreparing)

	active, err := orders.List(ctx, repository.OrderFilters{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, c, active[0].ID, "newest first")
	require.Equal(t, a, active[1].ID)

	all, err := orders.List(ctx, repository.OrderFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	_ = b
}

func TestOrderSaveMutableFieldsOnly(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	orders, couriers, _ := openTestDB(t)

	cid, err := couriers.Insert(ctx, repository.Courier{Name: "Carlos", Active: true})
	require.NoError(t, err)

	id, err := orders.Insert(ctx, repository.Order{
		Customer:      "Ana",
		Channel:       repository.ChannelWhatsApp,
		Status:        repository.StatusReceived,
		Payment:       repository.PaymentPix,
		ProductsValue: 30,
		DeliveryFee:   5,
		TotalValue:    35,
	})
	require.NoError(t, err)

	got, err := orders.Get(ctx, id)
	require.NoError(t, err)

	got.Status = repository.StatusPreparing
	got.CourierID = &cid
	got.PixConfirmed = true
	got.Note = "troco para 50"
	got.Customer = "Renamed" // immutable; Save must ignore it
	require.NoError(t, orders.Save(ctx, *got))

	saved, err := orders.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, repository.StatusPreparing, saved.Status)
	require.NotNil(t, saved.CourierID)
	require.Equal(t, cid, *saved.CourierID)
	require.True(t, saved.PixConfirmed)
	require.Equal(t, "troco para 50", saved.Note)
	require.Equal(t, "Ana", saved.Customer)
}

func TestOrderSaveMissingRowFails(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	orders, _, _ := openTestDB(t)

	err := orders.Save(ctx, repository.Order{ID: 999, Status: repository.StatusPreparing})
	require.Error(t, err)
}

func TestCourierLoadNeverNegative(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, couriers, _ := openTestDB(t)

	id, err := couriers.Insert(ctx, repository.Courier{Name: "Maya", Active: true})
	require.NoError(t, err)

	require.NoError(t, couriers.AddLoad(ctx, id, 1))
	require.NoError(t, couriers.AddLoad(ctx, id, -5))

	list, err := couriers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 0, list[0].LoadCount, "load clamps at zero")
}

func TestCourierSetActiveTogglesRoster(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, couriers, _ := openTestDB(t)

	id, err := couriers.Insert(ctx, repository.Courier{Name: "Carlos", Active: true})
	require.NoError(t, err)

	require.NoError(t, couriers.SetActive(ctx, id, false))
	list, err := couriers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].Active)

	require.NoError(t, couriers.SetActive(ctx, id, true))
	list, err = couriers.List(ctx)
	require.NoError(t, err)
	require.True(t, list[0].Active)
}

func TestNeighborhoodByNameCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, hoods := openTestDB(t)

	_, err := hoods.Insert(ctx, repository.Neighborhood{Name: "Jardim", Fee: 8})
	require.NoError(t, err)

	got, err := hoods.ByName(ctx, "JARDIM")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 8.0, got.Fee)

	missing, err := hoods.ByName(ctx, "Lapa")
	require.NoError(t, err)
	require.Nil(t, missing)
}
