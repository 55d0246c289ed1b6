package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// TableOrder is what the floor sees for one table.
type TableOrder struct {
	GuestCount int32            `json:"guest_count"`
	SeatedAt   *time.Time       `json:"seated_at"`
	SessionID  *uuid.UUID       `json:"session_id,omitempty"`
	Items      []TableOrderItem `json:"items"`
}

// TableOrderItem has the same shape on the session and legacy branches.
type TableOrderItem struct {
	ID              uuid.UUID                `json:"id"`
	OrderID         uuid.UUID                `json:"order_id"`
	Name            string                   `json:"name"`
	Price           decimal.Decimal          `json:"price"`
	Quantity        int32                    `json:"quantity"`
	Status          database.OrderItemStatus `json:"status"`
	Seat            int32                    `json:"seat"`
	Wave            int32                    `json:"wave"`
	Notes           string                   `json:"notes,omitempty"`
	SentToKitchenAt *time.Time               `json:"sent_to_kitchen_at,omitempty"`
	Voided          bool                     `json:"voided,omitempty"`
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

// GetOrderForTable reads a table's order. An open session wins; otherwise
// the legacy table-bound order is read. A table with neither and no guests
// returns nil.
func (s *FloorService) GetOrderForTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (*TableOrder, error) {
	_, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return nil, err
	}

	sess, err := s.store.GetOpenSessionForTable(ctx, database.GetOpenSessionForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	switch {
	case err == nil:
		return s.readSessionOrder(ctx, sess)
	case errors.Is(err, pgx.ErrNoRows):
		return s.readLegacyOrder(ctx, locationID, tableID)
	default:
		return nil, fmt.Errorf("get open session: %w", err)
	}
}

func (s *FloorService) readSessionOrder(ctx context.Context, sess database.TableSession) (*TableOrder, error) {
	sessionID := sess.ID
	seatedAt := sess.OpenedAt
	out := &TableOrder{
		GuestCount: sess.GuestCount,
		SeatedAt:   &seatedAt,
		SessionID:  &sessionID,
		Items:      []TableOrderItem{},
	}

	orders, err := s.store.ListOrdersBySession(ctx, pgUUID(sess.ID))
	if err != nil {
		return nil, fmt.Errorf("list session orders: %w", err)
	}
	if len(orders) == 0 {
		return out, nil
	}

	items, err := s.listOrdersItems(ctx, orders)
	if err != nil {
		return nil, err
	}
	out.Items = items
	return out, nil
}

func (s *FloorService) readLegacyOrder(ctx context.Context, locationID, tableID uuid.UUID) (*TableOrder, error) {
	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}

	order, err := s.store.GetActiveLegacyOrderForTable(ctx, database.GetActiveLegacyOrderForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get legacy order: %w", err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if table.GuestCount == 0 {
			return nil, nil
		}
		return &TableOrder{
			GuestCount: table.GuestCount,
			SeatedAt:   timePtr(table.SeatedAt),
			Items:      []TableOrderItem{},
		}, nil
	}

	items, err := s.listOrdersItems(ctx, []database.Order{order})
	if err != nil {
		return nil, err
	}
	return &TableOrder{
		GuestCount: table.GuestCount,
		SeatedAt:   timePtr(table.SeatedAt),
		Items:      items,
	}, nil
}

// listOrdersItems loads and maps every item of orders, resolving seat
// numbers through one batch seat lookup.
func (s *FloorService) listOrdersItems(ctx context.Context, orders []database.Order) ([]TableOrderItem, error) {
	ids := make([]uuid.UUID, len(orders))
	waves := make(map[uuid.UUID]int32, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		waves[o.ID] = o.Wave
	}

	rows, err := s.store.ListOrderItemsByOrders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	var seatIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, it := range rows {
		if it.SeatID.Valid && !seen[it.SeatID.Bytes] {
			seen[it.SeatID.Bytes] = true
			seatIDs = append(seatIDs, it.SeatID.Bytes)
		}
	}
	seatNumbers := make(map[uuid.UUID]int32, len(seatIDs))
	if len(seatIDs) > 0 {
		seats, err := s.store.ListSeatsByIDs(ctx, seatIDs)
		if err != nil {
			return nil, fmt.Errorf("list seats: %w", err)
		}
		for _, seat := range seats {
			seatNumbers[seat.ID] = seat.SeatNumber
		}
	}

	items := make([]TableOrderItem, 0, len(rows))
	for _, it := range rows {
		seat := it.Seat
		if it.SeatID.Valid {
			if n, ok := seatNumbers[it.SeatID.Bytes]; ok {
				seat = n
			}
		}
		items = append(items, TableOrderItem{
			ID:              it.ID,
			OrderID:         it.OrderID,
			Name:            it.ItemName,
			Price:           numericToDecimal(it.ItemPrice),
			Quantity:        it.Quantity,
			Status:          normalizeItemStatus(it.Status),
			Seat:            seat,
			Wave:            waves[it.OrderID],
			Notes:           it.Notes.String,
			SentToKitchenAt: timePtr(it.SentToKitchenAt),
			Voided:          it.VoidedAt.Valid,
		})
	}
	return items, nil
}
