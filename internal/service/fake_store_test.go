package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// --- Transaction mocks ---

// mockTx implements pgx.Tx. Commit and Rollback drive the fake store's
// snapshot; everything else panics so accidental calls surface.
type mockTx struct {
	store       *fakeStore
	snap        *fakeState
	committed   bool
	commitErr   error
	rollbackErr error
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.committed = true
	return nil
}
func (m *mockTx) Rollback(ctx context.Context) error {
	if !m.committed && m.snap != nil {
		m.store.restore(m.snap)
		m.snap = nil
	}
	return m.rollbackErr
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockPool implements Pool. Queries never reach it because the store
// factory ignores the DBTX it is given.
type mockPool struct {
	store    *fakeStore
	beginErr error
}

func (m *mockPool) Begin(ctx context.Context) (pgx.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	return &mockTx{store: m.store, snap: m.store.snapshot()}, nil
}
func (m *mockPool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	panic("not implemented")
}

// --- In-memory store ---

type fakeState struct {
	locations map[uuid.UUID]database.Location
	periods   []database.ServicePeriod
	tables    map[uuid.UUID]database.Table
	sessions  map[uuid.UUID]database.TableSession
	seats     map[uuid.UUID]database.Seat
	orders    map[uuid.UUID]database.Order
	items     map[uuid.UUID]database.OrderItem
	payments  map[uuid.UUID]database.Payment
	events    []database.SessionEvent
}

func newFakeState() *fakeState {
	return &fakeState{
		locations: map[uuid.UUID]database.Location{},
		tables:    map[uuid.UUID]database.Table{},
		sessions:  map[uuid.UUID]database.TableSession{},
		seats:     map[uuid.UUID]database.Seat{},
		orders:    map[uuid.UUID]database.Order{},
		items:     map[uuid.UUID]database.OrderItem{},
		payments:  map[uuid.UUID]database.Payment{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *fakeState) clone() *fakeState {
	return &fakeState{
		locations: cloneMap(s.locations),
		periods:   append([]database.ServicePeriod(nil), s.periods...),
		tables:    cloneMap(s.tables),
		sessions:  cloneMap(s.sessions),
		seats:     cloneMap(s.seats),
		orders:    cloneMap(s.orders),
		items:     cloneMap(s.items),
		payments:  cloneMap(s.payments),
		events:    append([]database.SessionEvent(nil), s.events...),
	}
}

// fakeStore implements FloorStore over maps and enforces the same unique
// constraints as the schema.
type fakeStore struct {
	mu  sync.Mutex
	s   *fakeState
	seq int64

	// fault injection
	createSeatErr  error
	updateItemErrs map[uuid.UUID]error
	waveConflicts  int
	createOrderHit int
}

var baseTime = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func newFakeStore() *fakeStore {
	return &fakeStore{s: newFakeState(), updateItemErrs: map[uuid.UUID]error{}}
}

func (f *fakeStore) snapshot() *fakeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s.clone()
}

func (f *fakeStore) restore(s *fakeState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = s
}

func (f *fakeStore) tick() time.Time {
	f.seq++
	return baseTime.Add(time.Duration(f.seq) * time.Millisecond)
}

func zero() pgtype.Numeric { return decimalToNumeric(decimal.Zero) }

func now() pgtype.Timestamptz { return pgtype.Timestamptz{Time: time.Now(), Valid: true} }

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// Locations

func (f *fakeStore) GetLocation(ctx context.Context, id uuid.UUID) (database.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.s.locations[id]
	if !ok {
		return database.Location{}, pgx.ErrNoRows
	}
	return l, nil
}

func (f *fakeStore) ListServicePeriodsByLocation(ctx context.Context, locationID uuid.UUID) ([]database.ServicePeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.ServicePeriod
	for _, p := range f.s.periods {
		if p.LocationID == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetTable(ctx context.Context, id uuid.UUID) (database.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.s.tables[id]
	if !ok {
		return database.Table{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeStore) GetTableByNumber(ctx context.Context, arg database.GetTableByNumberParams) (database.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.s.tables {
		if t.LocationID == arg.LocationID && strings.EqualFold(t.TableNumber, arg.TableNumber) {
			return t, nil
		}
	}
	return database.Table{}, pgx.ErrNoRows
}

// Sessions

func (f *fakeStore) CreateTableSession(ctx context.Context, arg database.CreateTableSessionParams) (database.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.s.sessions {
		if s.LocationID == arg.LocationID && s.TableID == arg.TableID && s.Status == database.SessionStatusOpen {
			return database.TableSession{}, pgx.ErrNoRows
		}
	}
	s := database.TableSession{
		ID:              uuid.New(),
		LocationID:      arg.LocationID,
		TableID:         arg.TableID,
		ServerID:        arg.ServerID,
		GuestCount:      arg.GuestCount,
		Status:          database.SessionStatusOpen,
		Source:          arg.Source,
		ServicePeriodID: arg.ServicePeriodID,
		Subtotal:        zero(),
		TaxAmount:       zero(),
		ServiceCharge:   zero(),
		TipAmount:       zero(),
		DiscountAmount:  zero(),
		Total:           zero(),
		PaidTotal:       zero(),
		OpenedAt:        f.tick(),
	}
	s.UpdatedAt = s.OpenedAt
	f.s.sessions[s.ID] = s
	return s, nil
}

func (f *fakeStore) GetOpenSessionForTable(ctx context.Context, arg database.GetOpenSessionForTableParams) (database.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.s.sessions {
		if s.LocationID == arg.LocationID && s.TableID == arg.TableID && s.Status == database.SessionStatusOpen {
			return s, nil
		}
	}
	return database.TableSession{}, pgx.ErrNoRows
}

func (f *fakeStore) GetTableSession(ctx context.Context, id uuid.UUID) (database.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.s.sessions[id]
	if !ok {
		return database.TableSession{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeStore) GetTableSessionForUpdate(ctx context.Context, id uuid.UUID) (database.TableSession, error) {
	return f.GetTableSession(ctx, id)
}

func (f *fakeStore) UpdateSessionGuestCount(ctx context.Context, arg database.UpdateSessionGuestCountParams) (database.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.s.sessions[arg.ID]
	if !ok {
		return database.TableSession{}, pgx.ErrNoRows
	}
	s.GuestCount = arg.GuestCount
	f.s.sessions[arg.ID] = s
	return s, nil
}

func (f *fakeStore) UpdateSessionTotals(ctx context.Context, arg database.UpdateSessionTotalsParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.s.sessions[arg.ID]
	if !ok {
		return nil
	}
	s.Subtotal = arg.Subtotal
	s.TaxAmount = arg.TaxAmount
	s.ServiceCharge = arg.ServiceCharge
	s.TipAmount = arg.TipAmount
	s.Total = arg.Total
	s.PaidTotal = arg.PaidTotal
	f.s.sessions[arg.ID] = s
	return nil
}

func (f *fakeStore) CloseTableSession(ctx context.Context, id uuid.UUID) (database.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.s.sessions[id]
	if !ok || s.Status != database.SessionStatusOpen {
		return database.TableSession{}, pgx.ErrNoRows
	}
	s.Status = database.SessionStatusClosed
	s.ClosedAt = now()
	f.s.sessions[id] = s
	return s, nil
}

// Seats

func (f *fakeStore) CreateSeat(ctx context.Context, arg database.CreateSeatParams) (database.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createSeatErr != nil {
		return database.Seat{}, f.createSeatErr
	}
	for _, s := range f.s.seats {
		if s.SessionID == arg.SessionID && s.SeatNumber == arg.SeatNumber {
			return database.Seat{}, uniqueViolation("seats_session_id_seat_number_key")
		}
	}
	s := database.Seat{ID: uuid.New(), SessionID: arg.SessionID, SeatNumber: arg.SeatNumber, Status: database.SeatStatusActive}
	f.s.seats[s.ID] = s
	return s, nil
}

func (f *fakeStore) ListSeatsBySession(ctx context.Context, sessionID uuid.UUID) ([]database.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.Seat
	for _, s := range f.s.seats {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (f *fakeStore) ListSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]database.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.Seat
	for _, id := range ids {
		if s, ok := f.s.seats[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSeatStatus(ctx context.Context, arg database.UpdateSeatStatusParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.s.seats[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	s.Status = arg.Status
	f.s.seats[arg.ID] = s
	return nil
}

// Orders

func (f *fakeStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createOrderHit++
	if f.waveConflicts > 0 {
		f.waveConflicts--
		return database.Order{}, uniqueViolation("orders_session_id_wave_key")
	}
	if arg.SessionID.Valid {
		for _, o := range f.s.orders {
			if o.SessionID == arg.SessionID && o.Wave == arg.Wave {
				return database.Order{}, uniqueViolation("orders_session_id_wave_key")
			}
		}
	}
	o := database.Order{
		ID:             uuid.New(),
		SessionID:      arg.SessionID,
		Wave:           arg.Wave,
		LocationID:     arg.LocationID,
		TableID:        arg.TableID,
		OrderNumber:    arg.OrderNumber,
		OrderType:      "dine_in",
		Status:         database.OrderStatusPending,
		PaymentStatus:  "unpaid",
		PaymentTiming:  "pay_later",
		Subtotal:       zero(),
		TaxAmount:      zero(),
		ServiceCharge:  zero(),
		TipAmount:      zero(),
		DiscountAmount: zero(),
		Total:          zero(),
		FiredAt:        arg.FiredAt,
		CreatedAt:      f.tick(),
	}
	f.s.orders[o.ID] = o
	return o, nil
}

// putLegacyOrder seeds an order with no session, as written before sessions existed.
func (f *fakeStore) putLegacyOrder(o database.Order) database.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Wave == 0 {
		o.Wave = 1
	}
	o.CreatedAt = f.tick()
	f.s.orders[o.ID] = o
	return o
}

func (f *fakeStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.s.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (f *fakeStore) GetOrderBySessionAndWave(ctx context.Context, arg database.GetOrderBySessionAndWaveParams) (database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.s.orders {
		if o.SessionID == arg.SessionID && o.Wave == arg.Wave {
			return o, nil
		}
	}
	return database.Order{}, pgx.ErrNoRows
}

func (f *fakeStore) GetMaxWaveForSession(ctx context.Context, sessionID pgtype.UUID) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var max int32
	for _, o := range f.s.orders {
		if o.SessionID == sessionID && o.Wave > max {
			max = o.Wave
		}
	}
	return max, nil
}

func (f *fakeStore) ListOrdersBySession(ctx context.Context, sessionID pgtype.UUID) ([]database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.Order
	for _, o := range f.s.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Wave < out[j].Wave })
	return out, nil
}

func (f *fakeStore) GetActiveLegacyOrderForTable(ctx context.Context, arg database.GetActiveLegacyOrderForTableParams) (database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *database.Order
	for _, o := range f.s.orders {
		if o.LocationID != arg.LocationID || o.TableID != arg.TableID || o.SessionID.Valid {
			continue
		}
		if o.Status != database.OrderStatusPending && o.Status != database.OrderStatusConfirmed {
			continue
		}
		if best == nil || o.CreatedAt.After(best.CreatedAt) {
			o := o
			best = &o
		}
	}
	if best == nil {
		return database.Order{}, pgx.ErrNoRows
	}
	return *best, nil
}

func (f *fakeStore) UpdateOrderTotals(ctx context.Context, arg database.UpdateOrderTotalsParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.s.orders[arg.ID]
	o.Subtotal = arg.Subtotal
	o.Total = arg.Total
	f.s.orders[arg.ID] = o
	return nil
}

func (f *fakeStore) FireOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.s.orders[id]
	if !ok || o.FiredAt.Valid {
		return database.Order{}, pgx.ErrNoRows
	}
	o.FiredAt = now()
	o.Status = database.OrderStatusConfirmed
	f.s.orders[id] = o
	return o, nil
}

func (f *fakeStore) CompleteOrder(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.s.orders[id]
	o.Status = database.OrderStatusCompleted
	o.CompletedAt = now()
	f.s.orders[id] = o
	return nil
}

func (f *fakeStore) CompleteSessionOrders(ctx context.Context, sessionID pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, o := range f.s.orders {
		if o.SessionID == sessionID {
			o.Status = database.OrderStatusCompleted
			o.CompletedAt = now()
			f.s.orders[id] = o
		}
	}
	return nil
}

// Items

func (f *fakeStore) CreateOrderItems(ctx context.Context, arg database.CreateOrderItemsParams) ([]database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]database.OrderItem, 0, len(arg.ItemNames))
	for i := range arg.ItemNames {
		it := database.OrderItem{
			ID:                  uuid.New(),
			OrderID:             arg.OrderID,
			ItemName:            arg.ItemNames[i],
			ItemPrice:           arg.ItemPrices[i],
			Quantity:            arg.Quantities[i],
			Seat:                arg.Seats[i],
			SeatID:              arg.SeatIds[i],
			CustomizationsTotal: zero(),
			LineTotal:           arg.LineTotals[i],
			Notes:               arg.Notes[i],
			Status:              database.OrderItemStatus(arg.Statuses[i]),
			CreatedAt:           f.tick(),
		}
		f.s.items[it.ID] = it
		out = append(out, it)
	}
	return out, nil
}

// putItem seeds a single item row directly.
func (f *fakeStore) putItem(it database.OrderItem) database.OrderItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	it.CreatedAt = f.tick()
	f.s.items[it.ID] = it
	return it
}

func (f *fakeStore) DeleteOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.s.items {
		if it.OrderID == orderID {
			delete(f.s.items, id)
		}
	}
	return nil
}

func (f *fakeStore) GetOrderItem(ctx context.Context, id uuid.UUID) (database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.s.items[id]
	if !ok {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	return it, nil
}

func (f *fakeStore) itemsWhere(keep func(database.OrderItem) bool) []database.OrderItem {
	var out []database.OrderItem
	for _, it := range f.s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *fakeStore) ListOrderItemsByOrders(ctx context.Context, orderIds []uuid.UUID) ([]database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range orderIds {
		want[id] = true
	}
	return f.itemsWhere(func(it database.OrderItem) bool { return want[it.OrderID] }), nil
}

func (f *fakeStore) ListActiveOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsWhere(func(it database.OrderItem) bool {
		return it.OrderID == orderID && !it.VoidedAt.Valid
	}), nil
}

func (f *fakeStore) ListUnsentOrderItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.itemsWhere(func(it database.OrderItem) bool {
		return it.OrderID == orderID && !it.SentToKitchenAt.Valid
	}), nil
}

func (f *fakeStore) MarkOrderItemSent(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.s.items[id]
	if !ok || it.SentToKitchenAt.Valid {
		return 0, nil
	}
	it.SentToKitchenAt = now()
	f.s.items[id] = it
	return 1, nil
}

func (f *fakeStore) UpdateOrderItemStatus(ctx context.Context, arg database.UpdateOrderItemStatusParams) (database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateItemErrs[arg.ID]; err != nil {
		return database.OrderItem{}, err
	}
	it, ok := f.s.items[arg.ID]
	if !ok || it.VoidedAt.Valid {
		return database.OrderItem{}, pgx.ErrNoRows
	}
	it.Status = arg.Status
	f.s.items[arg.ID] = it
	return it, nil
}

func (f *fakeStore) sessionOrderIDs(sessionID pgtype.UUID) map[uuid.UUID]int32 {
	ids := map[uuid.UUID]int32{}
	for _, o := range f.s.orders {
		if o.SessionID == sessionID {
			ids[o.ID] = o.Wave
		}
	}
	return ids
}

func unfinished(it database.OrderItem) bool {
	switch it.Status {
	case database.OrderItemStatusPending, database.OrderItemStatusPreparing, database.OrderItemStatusReady:
		return !it.VoidedAt.Valid
	}
	return false
}

func (f *fakeStore) ListUnfinishedItemsBySession(ctx context.Context, sessionID pgtype.UUID) ([]database.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := f.sessionOrderIDs(sessionID)
	out := f.itemsWhere(func(it database.OrderItem) bool {
		_, ok := orders[it.OrderID]
		return ok && unfinished(it)
	})
	sort.SliceStable(out, func(i, j int) bool { return orders[out[i].OrderID] < orders[out[j].OrderID] })
	return out, nil
}

func (f *fakeStore) VoidUnfinishedItemsBySession(ctx context.Context, sessionID pgtype.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := f.sessionOrderIDs(sessionID)
	var n int64
	for id, it := range f.s.items {
		if _, ok := orders[it.OrderID]; ok && unfinished(it) {
			it.VoidedAt = now()
			f.s.items[id] = it
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) SumSessionLineTotals(ctx context.Context, sessionID pgtype.UUID) (pgtype.Numeric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := f.sessionOrderIDs(sessionID)
	sum := decimal.Zero
	for _, it := range f.s.items {
		if _, ok := orders[it.OrderID]; ok && !it.VoidedAt.Valid {
			sum = sum.Add(numericToDecimal(it.LineTotal))
		}
	}
	return decimalToNumeric(sum), nil
}

// Payments

func (f *fakeStore) CreatePayment(ctx context.Context, arg database.CreatePaymentParams) (database.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := database.Payment{
		ID:        uuid.New(),
		SessionID: arg.SessionID,
		Amount:    arg.Amount,
		TipAmount: arg.TipAmount,
		Method:    arg.Method,
		Status:    "completed",
		PaidAt:    f.tick(),
	}
	f.s.payments[p.ID] = p
	return p, nil
}

func (f *fakeStore) SumPaymentsBySession(ctx context.Context, sessionID uuid.UUID) (database.SumPaymentsBySessionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	amount, tips := decimal.Zero, decimal.Zero
	for _, p := range f.s.payments {
		if p.SessionID == sessionID && p.Status == "completed" {
			amount = amount.Add(numericToDecimal(p.Amount))
			tips = tips.Add(numericToDecimal(p.TipAmount))
		}
	}
	return database.SumPaymentsBySessionRow{
		AmountTotal: decimalToNumeric(amount),
		TipTotal:    decimalToNumeric(tips),
	}, nil
}

// Events

func (f *fakeStore) CreateSessionEvent(ctx context.Context, arg database.CreateSessionEventParams) (database.SessionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev := database.SessionEvent{
		ID:         uuid.New(),
		LocationID: arg.LocationID,
		SessionID:  arg.SessionID,
		EventType:  arg.EventType,
		Payload:    arg.Payload,
		CreatedAt:  f.tick(),
	}
	f.s.events = append(f.s.events, ev)
	return ev, nil
}

// --- Inspection helpers ---

func (f *fakeStore) allSessions() []database.TableSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.TableSession
	for _, s := range f.s.sessions {
		out = append(out, s)
	}
	return out
}

func (f *fakeStore) session(id uuid.UUID) database.TableSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s.sessions[id]
}

func (f *fakeStore) ordersFor(sessionID uuid.UUID) []database.Order {
	out, _ := f.ListOrdersBySession(context.Background(), pgUUID(sessionID))
	return out
}

func (f *fakeStore) itemsFor(orderID uuid.UUID) []database.OrderItem {
	out, _ := f.ListOrderItemsByOrders(context.Background(), []uuid.UUID{orderID})
	return out
}

func (f *fakeStore) seatsFor(sessionID uuid.UUID) []database.Seat {
	out, _ := f.ListSeatsBySession(context.Background(), sessionID)
	return out
}

func (f *fakeStore) paymentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.s.payments)
}

func (f *fakeStore) eventTypes(sessionID uuid.UUID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, ev := range f.s.events {
		if ev.SessionID == sessionID {
			out = append(out, ev.EventType)
		}
	}
	return out
}
