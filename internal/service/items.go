package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

var itemStatusRank = map[database.OrderItemStatus]int{
	database.OrderItemStatusPending:   0,
	database.OrderItemStatusPreparing: 1,
	database.OrderItemStatusReady:     2,
	database.OrderItemStatusServed:    3,
}

// ParseItemTarget accepts the statuses an item may be advanced to.
func ParseItemTarget(s string) (database.OrderItemStatus, error) {
	switch st := database.OrderItemStatus(s); st {
	case database.OrderItemStatusPreparing, database.OrderItemStatusReady, database.OrderItemStatusServed:
		return st, nil
	}
	return "", ErrInvalidItemStatus
}

// MarkItemPreparing moves the item to preparing. See markItem for the transition rules.
func (s *FloorService) MarkItemPreparing(ctx context.Context, itemID uuid.UUID) (database.OrderItem, error) {
	return s.markItem(ctx, itemID, database.OrderItemStatusPreparing)
}

// MarkItemReady moves the item to ready. See markItem for the transition rules.
func (s *FloorService) MarkItemReady(ctx context.Context, itemID uuid.UUID) (database.OrderItem, error) {
	return s.markItem(ctx, itemID, database.OrderItemStatusReady)
}

// MarkItemServed moves the item to served. See markItem for the transition rules.
func (s *FloorService) MarkItemServed(ctx context.Context, itemID uuid.UUID) (database.OrderItem, error) {
	return s.markItem(ctx, itemID, database.OrderItemStatusServed)
}

// MarkItem dispatches to the per-status helpers.
func (s *FloorService) MarkItem(ctx context.Context, itemID uuid.UUID, target database.OrderItemStatus) (database.OrderItem, error) {
	switch target {
	case database.OrderItemStatusPreparing:
		return s.MarkItemPreparing(ctx, itemID)
	case database.OrderItemStatusReady:
		return s.MarkItemReady(ctx, itemID)
	case database.OrderItemStatusServed:
		return s.MarkItemServed(ctx, itemID)
	}
	return database.OrderItem{}, ErrInvalidItemStatus
}

func (s *FloorService) markItem(ctx context.Context, itemID uuid.UUID, target database.OrderItemStatus) (database.OrderItem, error) {
	item, err := s.store.GetOrderItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.OrderItem{}, ErrItemNotFound
		}
		return database.OrderItem{}, fmt.Errorf("get order item: %w", err)
	}
	order, err := s.store.GetOrder(ctx, item.OrderID)
	if err != nil {
		return database.OrderItem{}, fmt.Errorf("get order: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, order.LocationID); err != nil {
		return database.OrderItem{}, err
	}
	return s.advanceItem(ctx, item, order, target)
}

// advanceItem moves an item forward along pending → preparing → ready →
// served. The current status is a no-op; backwards and voided fail.
func (s *FloorService) advanceItem(ctx context.Context, item database.OrderItem, order database.Order, target database.OrderItemStatus) (database.OrderItem, error) {
	if item.VoidedAt.Valid {
		return item, ErrInvalidItemTransition
	}
	from, ok := itemStatusRank[item.Status]
	if !ok {
		from = 0
	}
	to, ok := itemStatusRank[target]
	if !ok {
		return item, ErrInvalidItemStatus
	}
	if to == from {
		return item, nil
	}
	if to < from {
		return item, ErrInvalidItemTransition
	}

	updated, err := s.store.UpdateOrderItemStatus(ctx, database.UpdateOrderItemStatusParams{
		ID:     item.ID,
		Status: target,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// voided between read and write
			return item, ErrInvalidItemTransition
		}
		return item, fmt.Errorf("update item status: %w", err)
	}

	if order.SessionID.Valid {
		s.events.RecordSessionEvent(ctx, order.LocationID, uuid.UUID(order.SessionID.Bytes), enum.EventItemStatusChanged, map[string]any{
			"item_id": item.ID,
			"wave":    order.Wave,
			"from":    item.Status,
			"to":      target,
		})
	}
	return updated, nil
}
