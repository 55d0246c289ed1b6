package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/auth"
	"github.com/tableside/api/internal/database"
)

// recordingSink implements Broadcaster and Publisher.
type recordingSink struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (r *recordingSink) Broadcast(locationID, sessionID uuid.UUID, eventType string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return r.err
}

func (r *recordingSink) Publish(ctx context.Context, locationID, sessionID uuid.UUID, eventType string, payload []byte) error {
	return r.Broadcast(locationID, sessionID, eventType, payload)
}

func (r *recordingSink) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fixture struct {
	svc   *FloorService
	store *fakeStore
	pool  *mockPool
	hub   *recordingSink
	loc   database.Location
	table database.Table
	ctx   context.Context
}

func numeric(val string) decimal.Decimal {
	return decimal.RequireFromString(val)
}

// newFixture seeds one location with table "T5" and a SERVER caller.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	loc := database.Location{
		ID:                uuid.New(),
		Name:              "Harbor Room",
		Timezone:          "UTC",
		TaxRate:           decimalToNumeric(decimal.Zero),
		ServiceChargeRate: decimalToNumeric(decimal.Zero),
	}
	store.s.locations[loc.ID] = loc
	table := database.Table{ID: uuid.New(), LocationID: loc.ID, TableNumber: "T5"}
	store.s.tables[table.ID] = table

	pool := &mockPool{store: store}
	hub := &recordingSink{}
	events := NewEventRecorder(store, hub, nil)
	svc := NewFloorService(pool, func(db database.DBTX) FloorStore { return store }, events, nil)
	svc.now = func() time.Time { return baseTime }

	ctx := auth.WithClaims(context.Background(), &auth.Claims{
		UserID:     uuid.New(),
		LocationID: loc.ID,
		Role:       "SERVER",
	})
	return &fixture{svc: svc, store: store, pool: pool, hub: hub, loc: loc, table: table, ctx: ctx}
}

func (f *fixture) addTable(number string) database.Table {
	t := database.Table{ID: uuid.New(), LocationID: f.loc.ID, TableNumber: number}
	f.store.s.tables[t.ID] = t
	return t
}

func wave(n int32) *int32 { return &n }

func item(name, price, status string, w int32) SessionItem {
	return SessionItem{Name: name, Price: numeric(price), Status: status, WaveNumber: wave(w)}
}

// seat syncs a simple state and returns the session id.
func (f *fixture) seat(t *testing.T, state StoreTableSessionState) uuid.UUID {
	t.Helper()
	id, err := f.svc.SyncOrder(f.ctx, f.loc.ID, f.table.TableNumber, state)
	if err != nil {
		t.Fatalf("sync order: %v", err)
	}
	return id
}

// setItemStatus forces every item in the session to status.
func (f *fixture) setItemStatus(sessionID uuid.UUID, status database.OrderItemStatus) {
	for _, o := range f.store.ordersFor(sessionID) {
		for _, it := range f.store.itemsFor(o.ID) {
			it.Status = status
			f.store.s.items[it.ID] = it
		}
	}
}
