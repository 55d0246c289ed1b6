package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

const (
	maxWaveRetries      = 3
	waveConstraintName  = "orders_session_id_wave_key"
	uniqueViolationCode = "23505"
)

// isWaveConflict checks for a unique violation on (session_id, wave).
func isWaveConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == waveConstraintName
	}
	return false
}

// SyncOrder reconciles the floor client's snapshot into per-wave orders and
// returns the session id. Everything after the table lookup runs in one
// transaction, retried when a concurrent sync creates the same wave.
func (s *FloorService) SyncOrder(ctx context.Context, locationID uuid.UUID, tableNumber string, state StoreTableSessionState) (uuid.UUID, error) {
	loc, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return uuid.Nil, err
	}
	if err := checkGuestCount(state.GuestCount); err != nil {
		return uuid.Nil, err
	}
	lines := flattenSessionState(state)
	guests := seededGuestCount(state.GuestCount)

	var lastErr error
	for attempt := 0; attempt < maxWaveRetries; attempt++ {
		sessID, created, err := s.syncOrderTx(ctx, loc, tableID, tableNumber, guests, lines)
		if err == nil {
			if created {
				s.events.RecordSessionEvent(ctx, loc.ID, sessID, enum.EventGuestSeated, map[string]any{
					"table_id":    tableID,
					"guest_count": guests,
				})
			}
			return sessID, nil
		}
		if isWaveConflict(err) {
			lastErr = err
			continue
		}
		return uuid.Nil, err
	}
	return uuid.Nil, lastErr
}

func (s *FloorService) syncOrderTx(ctx context.Context, loc database.Location, tableID uuid.UUID, tableNumber string, guests int32, lines []lineItem) (uuid.UUID, bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	// --- Session ---
	sess, created, err := s.getOrCreateSession(ctx, store, loc, tableID, guests, callerID(ctx))
	if err != nil {
		return uuid.Nil, false, err
	}
	if err := CanAddItems(sess.Status); err != nil {
		return uuid.Nil, false, err
	}
	if !created {
		if sess, err = store.UpdateSessionGuestCount(ctx, database.UpdateSessionGuestCountParams{
			ID:         sess.ID,
			GuestCount: guests,
		}); err != nil {
			return uuid.Nil, false, fmt.Errorf("update guest count: %w", err)
		}
	}
	if err := syncSeats(ctx, store, sess.ID, guests); err != nil {
		return uuid.Nil, false, fmt.Errorf("sync seats: %w", err)
	}

	// --- Seat lookup ---
	seats, err := store.ListSeatsBySession(ctx, sess.ID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("list seats: %w", err)
	}
	seatIDs := make(map[int32]uuid.UUID, len(seats))
	for _, seat := range seats {
		if seat.Status == database.SeatStatusActive {
			seatIDs[seat.SeatNumber] = seat.ID
		}
	}

	// --- Waves ---
	byWave := make(map[int32][]lineItem)
	for _, l := range lines {
		byWave[l.wave] = append(byWave[l.wave], l)
	}
	waves := make([]int32, 0, len(byWave))
	for w := range byWave {
		waves = append(waves, w)
	}
	if len(waves) == 0 {
		waves = append(waves, 1)
	}
	sort.Slice(waves, func(i, j int) bool { return waves[i] < waves[j] })

	for _, wave := range waves {
		order, err := s.findOrCreateOrder(ctx, store, sess, tableNumber, wave, wave == 1)
		if err != nil {
			return uuid.Nil, false, err
		}
		if err := replaceOrderItems(ctx, store, order.ID, byWave[wave], seatIDs); err != nil {
			return uuid.Nil, false, err
		}
	}

	if _, err := recalculateTotals(ctx, store, loc, sess); err != nil {
		return uuid.Nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, false, fmt.Errorf("commit tx: %w", err)
	}
	return sess.ID, created, nil
}

func (s *FloorService) findOrCreateOrder(ctx context.Context, store FloorStore, sess database.TableSession, tableNumber string, wave int32, fired bool) (database.Order, error) {
	order, err := store.GetOrderBySessionAndWave(ctx, database.GetOrderBySessionAndWaveParams{
		SessionID: pgUUID(sess.ID),
		Wave:      wave,
	})
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.Order{}, fmt.Errorf("get wave %d order: %w", wave, err)
	}
	return s.createWaveOrder(ctx, store, sess, tableNumber, wave, fired)
}

func (s *FloorService) createWaveOrder(ctx context.Context, store FloorStore, sess database.TableSession, tableNumber string, wave int32, fired bool) (database.Order, error) {
	now := s.now()
	firedAt := pgtype.Timestamptz{}
	if fired {
		firedAt = pgtype.Timestamptz{Time: now, Valid: true}
	}
	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		SessionID:   pgUUID(sess.ID),
		Wave:        wave,
		LocationID:  sess.LocationID,
		TableID:     sess.TableID,
		OrderNumber: orderNumber(tableNumber, now),
		FiredAt:     firedAt,
	})
	if err != nil {
		return database.Order{}, fmt.Errorf("create wave %d order: %w", wave, err)
	}
	return order, nil
}

// replaceOrderItems deletes the order's items and inserts lines in their
// place, then stores subtotal = total = sum of prices.
func replaceOrderItems(ctx context.Context, store FloorStore, orderID uuid.UUID, lines []lineItem, seatIDs map[int32]uuid.UUID) error {
	if err := store.DeleteOrderItemsByOrder(ctx, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	subtotal := decimal.Zero
	if len(lines) > 0 {
		arg := database.CreateOrderItemsParams{OrderID: orderID}
		for _, l := range lines {
			seatID := pgtype.UUID{}
			if id, ok := seatIDs[l.seat]; ok && l.seat > 0 {
				seatID = pgUUID(id)
			}
			price := decimalToNumeric(l.price)
			arg.ItemNames = append(arg.ItemNames, l.name)
			arg.ItemPrices = append(arg.ItemPrices, price)
			arg.Quantities = append(arg.Quantities, 1)
			arg.Seats = append(arg.Seats, l.seat)
			arg.SeatIds = append(arg.SeatIds, seatID)
			arg.LineTotals = append(arg.LineTotals, price)
			arg.Notes = append(arg.Notes, pgtype.Text{String: l.notes, Valid: true})
			arg.Statuses = append(arg.Statuses, string(l.status))
			subtotal = subtotal.Add(l.price)
		}
		if _, err := store.CreateOrderItems(ctx, arg); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
	}

	total := decimalToNumeric(subtotal)
	if err := store.UpdateOrderTotals(ctx, database.UpdateOrderTotalsParams{
		ID:       orderID,
		Subtotal: total,
		Total:    total,
	}); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

// CreateNextWave opens wave MAX(wave)+1 for the session, unfired.
func (s *FloorService) CreateNextWave(ctx context.Context, sessionID uuid.UUID) (database.Order, error) {
	sess, err := s.store.GetTableSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrSessionNotFound
		}
		return database.Order{}, fmt.Errorf("get session: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, sess.LocationID); err != nil {
		return database.Order{}, err
	}
	if err := CanAddItems(sess.Status); err != nil {
		return database.Order{}, err
	}
	table, err := s.store.GetTable(ctx, sess.TableID)
	if err != nil {
		return database.Order{}, fmt.Errorf("get table: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxWaveRetries; attempt++ {
		maxWave, err := s.store.GetMaxWaveForSession(ctx, pgUUID(sess.ID))
		if err != nil {
			return database.Order{}, fmt.Errorf("get max wave: %w", err)
		}
		order, err := s.createWaveOrder(ctx, s.store, sess, table.TableNumber, maxWave+1, false)
		if err == nil {
			return order, nil
		}
		if isWaveConflict(err) {
			lastErr = err
			continue
		}
		return database.Order{}, err
	}
	return database.Order{}, lastErr
}

// FireWave sends a wave to the kitchen. Firing twice is ErrWaveAlreadyFired
// and changes nothing.
func (s *FloorService) FireWave(ctx context.Context, orderID uuid.UUID) (database.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("get order: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, order.LocationID); err != nil {
		return database.Order{}, err
	}
	if err := CanFireWave(order.FiredAt); err != nil {
		return database.Order{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	fired, err := store.FireOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// fired concurrently
			return database.Order{}, ErrWaveAlreadyFired
		}
		return database.Order{}, fmt.Errorf("fire order: %w", err)
	}

	unsent, err := store.ListUnsentOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return database.Order{}, fmt.Errorf("list unsent items: %w", err)
	}
	for _, item := range unsent {
		if _, err := store.MarkOrderItemSent(ctx, item.ID); err != nil {
			return database.Order{}, fmt.Errorf("mark item %s sent: %w", item.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Order{}, fmt.Errorf("commit tx: %w", err)
	}

	if fired.SessionID.Valid {
		s.events.RecordSessionEvent(ctx, fired.LocationID, uuid.UUID(fired.SessionID.Bytes), enum.EventCourseFired, map[string]any{
			"wave":     fired.Wave,
			"order_id": fired.ID,
			"items":    len(unsent),
		})
	}
	return fired, nil
}

// GetOrderIDForSessionAndWave looks up a wave's order.
func (s *FloorService) GetOrderIDForSessionAndWave(ctx context.Context, sessionID uuid.UUID, wave int32) (uuid.UUID, error) {
	sess, err := s.store.GetTableSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, sess.LocationID); err != nil {
		return uuid.Nil, err
	}
	order, err := s.store.GetOrderBySessionAndWave(ctx, database.GetOrderBySessionAndWaveParams{
		SessionID: pgUUID(sessionID),
		Wave:      wave,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrOrderNotFound
		}
		return uuid.Nil, fmt.Errorf("get wave order: %w", err)
	}
	return order.ID, nil
}

// AdvanceOrderWaveStatus moves every non-voided item of a wave to target,
// one item at a time. It stops at the first failure with an *AdvanceError;
// items already advanced stay advanced.
func (s *FloorService) AdvanceOrderWaveStatus(ctx context.Context, locationID uuid.UUID, tableNumber string, wave int32, target database.OrderItemStatus) (int, error) {
	if _, err := ParseItemTarget(string(target)); err != nil {
		return 0, err
	}
	if wave < 1 {
		return 0, ErrInvalidWave
	}
	_, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return 0, err
	}

	sess, err := s.store.GetOpenSessionForTable(ctx, database.GetOpenSessionForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("get open session: %w", err)
	}

	order, err := s.store.GetOrderBySessionAndWave(ctx, database.GetOrderBySessionAndWaveParams{
		SessionID: pgUUID(sess.ID),
		Wave:      wave,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("get wave order: %w", err)
	}

	items, err := s.store.ListActiveOrderItemsByOrder(ctx, order.ID)
	if err != nil {
		return 0, fmt.Errorf("list wave items: %w", err)
	}

	advanced := 0
	for _, item := range items {
		if _, err := s.advanceItem(ctx, item, order, target); err != nil {
			return advanced, &AdvanceError{ItemID: item.ID, Advanced: advanced, Err: err}
		}
		advanced++
	}
	return advanced, nil
}
