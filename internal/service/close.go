package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

// PaymentInput is an optional settlement recorded while closing.
type PaymentInput struct {
	Amount    decimal.Decimal
	TipAmount decimal.Decimal
	Method    database.PaymentMethod
}

// CloseOptions controls the close mode. Force is the manager override.
type CloseOptions struct {
	Force bool
}

// CloseResult describes what a close did.
type CloseResult struct {
	SessionID *uuid.UUID     `json:"session_id,omitempty"`
	OrderID   *uuid.UUID     `json:"order_id,omitempty"`
	PaymentID *uuid.UUID     `json:"payment_id,omitempty"`
	Legacy    bool           `json:"legacy"`
	Forced    bool           `json:"forced"`
	Voided    int64          `json:"voided_items"`
	Totals    *SessionTotals `json:"totals,omitempty"`
}

func validatePayment(p *PaymentInput) error {
	if p == nil {
		return nil
	}
	if p.TipAmount.IsNegative() {
		return ErrInvalidTip
	}
	if p.Amount.IsNegative() {
		return ErrInvalidPaymentAmount
	}
	if p.Method == "" {
		p.Method = database.PaymentMethodCard
	}
	if !p.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// CloseOrderForTable settles and closes the table's open session. Without
// Force the close must pass CanCloseSession; with Force unfinished items
// are voided instead. Every order of the session completes. A table with
// no session completes its legacy order, if any.
func (s *FloorService) CloseOrderForTable(ctx context.Context, locationID uuid.UUID, tableNumber string, payment *PaymentInput, opts CloseOptions) (*CloseResult, error) {
	loc, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(payment); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	open, err := store.GetOpenSessionForTable(ctx, database.GetOpenSessionForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return s.closeLegacy(ctx, tx, store, locationID, tableID)
	}
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}

	sess, err := store.GetTableSessionForUpdate(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	if sess.Status != database.SessionStatusOpen {
		return nil, &CloseBlockedError{Reason: ReasonSessionNotOpen}
	}

	result := &CloseResult{SessionID: &sess.ID, Forced: opts.Force}
	var events []pendingEvent

	if opts.Force {
		voided, err := store.VoidUnfinishedItemsBySession(ctx, pgUUID(sess.ID))
		if err != nil {
			return nil, fmt.Errorf("void unfinished items: %w", err)
		}
		result.Voided = voided
		events = append(events, pendingEvent{enum.EventPaymentCompleted, map[string]any{
			"forced_close": true,
			"reason":       enum.CloseReasonManagerOverride,
		}})
	}

	totals, err := recalculateTotals(ctx, store, loc, sess)
	if err != nil {
		return nil, err
	}

	if !opts.Force {
		var incoming *decimal.Decimal
		if payment != nil {
			incoming = &payment.Amount
		}
		if err := canCloseSession(ctx, store, sess, totals.Total, incoming); err != nil {
			return nil, err
		}
	}

	if payment != nil && payment.Amount.IsPositive() {
		p, err := store.CreatePayment(ctx, database.CreatePaymentParams{
			SessionID: sess.ID,
			Amount:    decimalToNumeric(payment.Amount),
			TipAmount: decimalToNumeric(payment.TipAmount),
			Method:    payment.Method,
		})
		if err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
		result.PaymentID = &p.ID
		if !opts.Force {
			events = append(events, pendingEvent{enum.EventPaymentCompleted, map[string]any{
				"payment_id": p.ID,
				"amount":     payment.Amount.StringFixed(2),
				"tip_amount": payment.TipAmount.StringFixed(2),
				"method":     payment.Method,
			}})
		}
		if totals, err = recalculateTotals(ctx, store, loc, sess); err != nil {
			return nil, err
		}
	}
	result.Totals = &totals

	if _, err := store.CloseTableSession(ctx, sess.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &CloseBlockedError{Reason: ReasonSessionNotOpen}
		}
		return nil, fmt.Errorf("close session: %w", err)
	}
	if err := store.CompleteSessionOrders(ctx, pgUUID(sess.ID)); err != nil {
		return nil, fmt.Errorf("complete session orders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	events = append(events, pendingEvent{enum.EventSessionClosed, map[string]any{
		"forced": opts.Force,
		"total":  totals.Total.StringFixed(2),
		"paid":   totals.PaidTotal.StringFixed(2),
	}})
	s.flushEvents(ctx, locationID, sess.ID, events)
	return result, nil
}

// closeLegacy completes a table-bound order from before sessions existed.
// An idle table closes trivially.
func (s *FloorService) closeLegacy(ctx context.Context, tx pgx.Tx, store FloorStore, locationID, tableID uuid.UUID) (*CloseResult, error) {
	order, err := store.GetActiveLegacyOrderForTable(ctx, database.GetActiveLegacyOrderForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return &CloseResult{Legacy: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get legacy order: %w", err)
	}

	if err := store.CompleteOrder(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("complete legacy order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &CloseResult{Legacy: true, OrderID: &order.ID}, nil
}
