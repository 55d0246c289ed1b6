package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tableside/api/internal/database"
)

func TestGetOrderForTableSession(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 2,
		Seats:      []SeatState{{Number: 2, Items: []SessionItem{item("Risotto", "19.00", "cooking", 1)}}},
		TableItems: []SessionItem{item("Wine", "38.00", "held", 2)},
	})

	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "t5")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.SessionID)
	assert.Equal(t, sessID, *got.SessionID)
	assert.Equal(t, int32(2), got.GuestCount)
	require.NotNil(t, got.SeatedAt)

	require.Len(t, got.Items, 2)
	byName := map[string]TableOrderItem{}
	for _, it := range got.Items {
		byName[it.Name] = it
	}
	risotto := byName["Risotto"]
	assert.Equal(t, int32(2), risotto.Seat)
	assert.Equal(t, int32(1), risotto.Wave)
	assert.Equal(t, database.OrderItemStatusPreparing, risotto.Status)
	assert.Equal(t, "Seat 2 · Wave 1", risotto.Notes)
	assert.True(t, risotto.Price.Equal(numeric("19")))

	wine := byName["Wine"]
	assert.Equal(t, int32(0), wine.Seat)
	assert.Equal(t, int32(2), wine.Wave)
	assert.Nil(t, wine.SentToKitchenAt)
}

func TestGetOrderForTableSessionWithoutOrders(t *testing.T) {
	f := newFixture(t)
	sessID, err := f.svc.GetOrCreateSessionForTable(f.ctx, f.loc.ID, f.table.ID, 3, nil)
	require.NoError(t, err)

	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sessID, *got.SessionID)
	assert.Equal(t, int32(3), got.GuestCount)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestGetOrderForTableLegacy(t *testing.T) {
	f := newFixture(t)
	seatedAt := baseTime.Add(-30 * time.Minute)
	table := f.store.s.tables[f.table.ID]
	table.GuestCount = 3
	table.SeatedAt = pgtype.Timestamptz{Time: seatedAt, Valid: true}
	f.store.s.tables[f.table.ID] = table

	order := f.store.putLegacyOrder(database.Order{
		LocationID: f.loc.ID,
		TableID:    f.table.ID,
		Status:     database.OrderStatusConfirmed,
	})
	f.store.putItem(database.OrderItem{
		OrderID:   order.ID,
		ItemName:  "Burger",
		ItemPrice: decimalToNumeric(numeric("15.00")),
		Quantity:  1,
		Seat:      3,
		Status:    database.OrderItemStatusReady,
	})
	f.store.putItem(database.OrderItem{
		OrderID:   order.ID,
		ItemName:  "Comped dessert",
		ItemPrice: decimalToNumeric(numeric("0")),
		Quantity:  1,
		Status:    "comped",
	})

	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.SessionID)
	assert.Equal(t, int32(3), got.GuestCount)
	require.NotNil(t, got.SeatedAt)
	assert.True(t, got.SeatedAt.Equal(seatedAt))

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Burger", got.Items[0].Name)
	assert.Equal(t, int32(3), got.Items[0].Seat)
	assert.Equal(t, int32(1), got.Items[0].Wave)
	assert.Equal(t, order.ID, got.Items[0].OrderID)
	assert.Equal(t, database.OrderItemStatusPending, got.Items[1].Status, "unknown status reads as pending")
}

func TestGetOrderForTableIdle(t *testing.T) {
	f := newFixture(t)
	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T5")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOrderForTableGuestsWithoutOrder(t *testing.T) {
	f := newFixture(t)
	table := f.store.s.tables[f.table.ID]
	table.GuestCount = 2
	f.store.s.tables[f.table.ID] = table

	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(2), got.GuestCount)
	assert.Nil(t, got.SeatedAt)
	assert.Empty(t, got.Items)
}

func TestGetOrderForTableIgnoresClosedSession(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 1, TableItems: []SessionItem{item("Tea", "3", "served", 1)}})
	sess := f.store.s.sessions[sessID]
	sess.Status = database.SessionStatusClosed
	f.store.s.sessions[sessID] = sess

	got, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T5")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOrderForTableErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrderForTable(f.ctx, f.loc.ID, "T99")
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = f.svc.GetOrderForTable(f.ctx, uuid.New(), "T5")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
