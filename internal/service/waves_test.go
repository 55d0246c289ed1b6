package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

func TestSyncOrderGroupsByWave(t *testing.T) {
	f := newFixture(t)
	state := StoreTableSessionState{
		GuestCount: 2,
		Seats: []SeatState{
			{Number: 1, Items: []SessionItem{item("Soup", "9.50", "sent", 1), item("Fish", "28.00", "held", 2)}},
		},
		TableItems: []SessionItem{item("Bread", "4.00", "served", 1), item("Sorbet", "7.25", "held", 3)},
	}

	sessID := f.seat(t, state)

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 3)

	wantSubtotals := map[int32]string{1: "13.50", 2: "28.00", 3: "7.25"}
	for _, o := range orders {
		assert.Equal(t, wantSubtotals[o.Wave], numericToDecimal(o.Subtotal).StringFixed(2), "wave %d subtotal", o.Wave)
		assert.Equal(t, numericToDecimal(o.Subtotal), numericToDecimal(o.Total))
		assert.Regexp(t, orderNumberPattern, o.OrderNumber)
		if o.Wave == 1 {
			assert.True(t, o.FiredAt.Valid, "wave 1 is fired on creation")
		} else {
			assert.False(t, o.FiredAt.Valid, "later waves start unfired")
		}
	}

	sess := f.store.session(sessID)
	assert.Equal(t, "48.75", numericToDecimal(sess.Subtotal).StringFixed(2))
	assert.Equal(t, int32(2), sess.GuestCount)
}

func TestSyncOrderStatusMapping(t *testing.T) {
	f := newFixture(t)
	state := StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{
			item("held", "1", "held", 1),
			item("sent", "1", "sent", 1),
			item("cooking", "1", "cooking", 1),
			item("ready", "1", "ready", 1),
			item("served", "1", "served", 1),
			item("void", "1", "void", 1),
		},
	}
	sessID := f.seat(t, state)

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 1)
	stored := map[string]database.OrderItemStatus{}
	for _, it := range f.store.itemsFor(orders[0].ID) {
		stored[it.ItemName] = it.Status
	}

	assert.Equal(t, map[string]database.OrderItemStatus{
		"held":    database.OrderItemStatusPending,
		"sent":    database.OrderItemStatusPending,
		"cooking": database.OrderItemStatusPreparing,
		"ready":   database.OrderItemStatusReady,
		"served":  database.OrderItemStatusServed,
	}, stored, "void never persists")
}

func TestSyncOrderEmptyStateCreatesWaveOne(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 0})

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 1)
	assert.Equal(t, int32(1), orders[0].Wave)
	assert.Empty(t, f.store.itemsFor(orders[0].ID))
	assert.Equal(t, int32(1), f.store.session(sessID).GuestCount, "guest count floors at one")
}

func TestSyncOrderReplacesItemsAndUpdatesGuests(t *testing.T) {
	f := newFixture(t)
	first := f.seat(t, StoreTableSessionState{
		GuestCount: 2,
		TableItems: []SessionItem{item("Olives", "6.00", "held", 1), item("Nuts", "5.00", "held", 1)},
	})
	second := f.seat(t, StoreTableSessionState{
		GuestCount: 4.7,
		TableItems: []SessionItem{item("Olives", "6.00", "held", 1)},
	})
	require.Equal(t, first, second)

	orders := f.store.ordersFor(first)
	require.Len(t, orders, 1)
	items := f.store.itemsFor(orders[0].ID)
	require.Len(t, items, 1)
	assert.Equal(t, "6.00", numericToDecimal(orders[0].Subtotal).StringFixed(2))

	assert.Equal(t, int32(4), f.store.session(first).GuestCount)
	assert.Equal(t, []int32{1, 2, 3, 4}, activeNumbers(f.store.seatsFor(first)))
}

func TestSyncOrderSubtotalMatchesStoredPrices(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{
			item("Mint", "0.005", "held", 1),
			item("Mint", "0.005", "held", 1),
			item("Mint", "0.005", "held", 1),
		},
	})

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 1)
	sum := decimal.Zero
	for _, it := range f.store.itemsFor(orders[0].ID) {
		sum = sum.Add(numericToDecimal(it.ItemPrice))
	}
	assert.Equal(t, "0.03", sum.StringFixed(2))
	assert.True(t, sum.Equal(numericToDecimal(orders[0].Subtotal)), "order subtotal %s, items %s", numericToDecimal(orders[0].Subtotal), sum)
	assert.True(t, sum.Equal(numericToDecimal(f.store.session(sessID).Subtotal)))
}

func TestSyncOrderGuestCountTooLarge(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SyncOrder(f.ctx, f.loc.ID, "T5", StoreTableSessionState{GuestCount: 200000})
	assert.ErrorIs(t, err, ErrInvalidGuestCount)
	assert.Empty(t, f.store.allSessions())
}

func TestSyncOrderNegativeSeatStoredAsShared(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		Seats:      []SeatState{{Number: -3, Items: []SessionItem{item("Water", "1.00", "held", 1)}}},
	})

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 1)
	items := f.store.itemsFor(orders[0].ID)
	require.Len(t, items, 1)
	assert.Equal(t, int32(0), items[0].Seat)
	assert.False(t, items[0].SeatID.Valid)
	assert.Equal(t, "Shared · Wave 1", items[0].Notes.String)
}

func TestSyncOrderResolvesSeatIDs(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 2,
		Seats: []SeatState{
			{Number: 2, Items: []SessionItem{item("Tea", "3.00", "held", 1)}},
			{Number: 7, Items: []SessionItem{item("Coffee", "3.50", "held", 1)}},
		},
		TableItems: []SessionItem{item("Chips", "4.00", "held", 1)},
	})

	seats := map[int32]uuid.UUID{}
	for _, s := range f.store.seatsFor(sessID) {
		seats[s.SeatNumber] = s.ID
	}

	orders := f.store.ordersFor(sessID)
	require.Len(t, orders, 1)
	for _, it := range f.store.itemsFor(orders[0].ID) {
		switch it.ItemName {
		case "Tea":
			assert.Equal(t, pgUUID(seats[2]), it.SeatID)
		case "Coffee":
			assert.False(t, it.SeatID.Valid, "seat 7 has no row yet")
			assert.Equal(t, int32(7), it.Seat)
		case "Chips":
			assert.False(t, it.SeatID.Valid, "shared items never resolve a seat")
			assert.Equal(t, "Shared · Wave 1", it.Notes.String)
		}
	}
}

func TestSyncOrderSeatFailureAbortsSync(t *testing.T) {
	f := newFixture(t)
	f.store.createSeatErr = errors.New("disk full")

	_, err := f.svc.SyncOrder(f.ctx, f.loc.ID, "T5", StoreTableSessionState{
		GuestCount: 2,
		TableItems: []SessionItem{item("Bread", "4.00", "held", 1)},
	})
	require.Error(t, err)
	assert.Empty(t, f.store.allSessions(), "rolled back with the transaction")
}

func TestSyncOrderRetriesWaveConflict(t *testing.T) {
	f := newFixture(t)
	f.store.waveConflicts = 1

	sessID, err := f.svc.SyncOrder(f.ctx, f.loc.ID, "T5", StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("Bread", "4.00", "held", 1)},
	})
	require.NoError(t, err)
	assert.Len(t, f.store.ordersFor(sessID), 1)
	assert.Len(t, f.store.allSessions(), 1)
}

func TestSyncOrderUnknownTableAndLocation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SyncOrder(f.ctx, f.loc.ID, "T404", StoreTableSessionState{})
	assert.ErrorIs(t, err, ErrTableNotFound)

	_, err = f.svc.SyncOrder(f.ctx, uuid.New(), "T5", StoreTableSessionState{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateNextWaveUsesMaxPlusOne(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("a", "1", "held", 1), item("b", "1", "held", 2), item("c", "1", "held", 4)},
	})

	order, err := f.svc.CreateNextWave(f.ctx, sessID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), order.Wave, "gaps are not filled")
	assert.False(t, order.FiredAt.Valid)
	assert.True(t, order.SessionID.Valid)
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
}

func TestCreateNextWaveRetriesConflict(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 1})
	f.store.waveConflicts = 2

	order, err := f.svc.CreateNextWave(f.ctx, sessID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), order.Wave)
}

func TestCreateNextWaveClosedSession(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 1})
	sess := f.store.s.sessions[sessID]
	sess.Status = database.SessionStatusClosed
	f.store.s.sessions[sessID] = sess

	_, err := f.svc.CreateNextWave(f.ctx, sessID)
	assert.ErrorIs(t, err, ErrSessionNotOpen)
	assert.Equal(t, "Cannot add items: session is not open", err.Error())
}

func TestFireWave(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("Steak", "40", "held", 2), item("Fries", "6", "held", 2)},
	})
	waveTwo, err := f.svc.GetOrderIDForSessionAndWave(f.ctx, sessID, 2)
	require.NoError(t, err)

	fired, err := f.svc.FireWave(f.ctx, waveTwo)
	require.NoError(t, err)
	assert.True(t, fired.FiredAt.Valid)
	assert.Equal(t, database.OrderStatusConfirmed, fired.Status)

	sentAt := map[uuid.UUID]pgtype.Timestamptz{}
	for _, it := range f.store.itemsFor(waveTwo) {
		require.True(t, it.SentToKitchenAt.Valid)
		sentAt[it.ID] = it.SentToKitchenAt
	}
	assert.Contains(t, f.store.eventTypes(sessID), enum.EventCourseFired)

	// second fire is refused and mutates nothing
	before := f.store.s.orders[waveTwo]
	_, err = f.svc.FireWave(f.ctx, waveTwo)
	assert.ErrorIs(t, err, ErrWaveAlreadyFired)

	after := f.store.s.orders[waveTwo]
	assert.Equal(t, before.FiredAt, after.FiredAt)
	assert.Equal(t, before.Status, after.Status)
	for _, it := range f.store.itemsFor(waveTwo) {
		assert.Equal(t, sentAt[it.ID], it.SentToKitchenAt)
	}
}

func TestFireWaveWaveOneAlreadyFired(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 1})
	waveOne, err := f.svc.GetOrderIDForSessionAndWave(f.ctx, sessID, 1)
	require.NoError(t, err)

	_, err = f.svc.FireWave(f.ctx, waveOne)
	assert.ErrorIs(t, err, ErrWaveAlreadyFired)
}

func TestFireWaveUnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.FireWave(f.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderIDForSessionAndWaveMissing(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{GuestCount: 1})

	_, err := f.svc.GetOrderIDForSessionAndWave(f.ctx, sessID, 9)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.GetOrderIDForSessionAndWave(f.ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAdvanceOrderWaveStatus(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("a", "1", "held", 1), item("b", "1", "cooking", 1), item("c", "1", "held", 1)},
	})

	n, err := f.svc.AdvanceOrderWaveStatus(f.ctx, f.loc.ID, "t5", 1, database.OrderItemStatusReady)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	orders := f.store.ordersFor(sessID)
	for _, it := range f.store.itemsFor(orders[0].ID) {
		assert.Equal(t, database.OrderItemStatusReady, it.Status)
	}
}

func TestAdvanceOrderWaveStatusStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	sessID := f.seat(t, StoreTableSessionState{
		GuestCount: 1,
		TableItems: []SessionItem{item("a", "1", "held", 1), item("b", "1", "held", 1), item("c", "1", "held", 1)},
	})
	items := f.store.itemsFor(f.store.ordersFor(sessID)[0].ID)
	require.Len(t, items, 3)
	f.store.updateItemErrs[items[1].ID] = errors.New("row locked")

	n, err := f.svc.AdvanceOrderWaveStatus(f.ctx, f.loc.ID, "T5", 1, database.OrderItemStatusPreparing)
	require.Error(t, err)
	assert.Equal(t, 1, n)

	var advErr *AdvanceError
	require.ErrorAs(t, err, &advErr)
	assert.Equal(t, items[1].ID, advErr.ItemID)
	assert.Equal(t, 1, advErr.Advanced)

	after := f.store.itemsFor(items[0].OrderID)
	assert.Equal(t, database.OrderItemStatusPreparing, after[0].Status, "earlier item stays advanced")
	assert.Equal(t, database.OrderItemStatusPending, after[1].Status)
	assert.Equal(t, database.OrderItemStatusPending, after[2].Status, "later items untouched")
}

func TestAdvanceOrderWaveStatusValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AdvanceOrderWaveStatus(f.ctx, f.loc.ID, "T5", 1, database.OrderItemStatusPending)
	assert.ErrorIs(t, err, ErrInvalidItemStatus)

	_, err = f.svc.AdvanceOrderWaveStatus(f.ctx, f.loc.ID, "T5", 0, database.OrderItemStatusReady)
	assert.ErrorIs(t, err, ErrInvalidWave)

	_, err = f.svc.AdvanceOrderWaveStatus(f.ctx, f.loc.ID, "T5", 1, database.OrderItemStatusReady)
	assert.ErrorIs(t, err, ErrNoSession)
}
