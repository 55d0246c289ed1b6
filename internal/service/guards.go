package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// CanAddItems allows item changes only on an open session.
func CanAddItems(status database.SessionStatus) error {
	if status != database.SessionStatusOpen {
		return ErrSessionNotOpen
	}
	return nil
}

// CanFireWave refuses a wave that already went to the kitchen.
func CanFireWave(firedAt pgtype.Timestamptz) error {
	if firedAt.Valid {
		return ErrWaveAlreadyFired
	}
	return nil
}

// CanCloseSession reports whether the session may close now, counting
// incoming toward the balance when set. Blocks are *CloseBlockedError.
func (s *FloorService) CanCloseSession(ctx context.Context, sessionID uuid.UUID, incoming *decimal.Decimal) error {
	sess, err := s.store.GetTableSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("get session: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, sess.LocationID); err != nil {
		return err
	}
	return canCloseSession(ctx, s.store, sess, numericToDecimal(sess.Total), incoming)
}

func canCloseSession(ctx context.Context, store FloorStore, sess database.TableSession, total decimal.Decimal, incoming *decimal.Decimal) error {
	if sess.Status != database.SessionStatusOpen {
		return &CloseBlockedError{Reason: ReasonSessionNotOpen}
	}

	unfinished, err := store.ListUnfinishedItemsBySession(ctx, pgUUID(sess.ID))
	if err != nil {
		return fmt.Errorf("list unfinished items: %w", err)
	}
	if len(unfinished) > 0 {
		return &CloseBlockedError{Reason: ReasonUnfinishedItems, Items: unfinished}
	}

	sums, err := store.SumPaymentsBySession(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("sum payments: %w", err)
	}
	paid := numericToDecimal(sums.AmountTotal)
	if incoming != nil {
		paid = paid.Add(*incoming)
	}

	remaining := total.Sub(paid)
	if remaining.IsPositive() {
		return &CloseBlockedError{
			Reason:        ReasonUnpaidBalance,
			Remaining:     remaining,
			SessionTotal:  total,
			PaymentsTotal: paid,
		}
	}
	return nil
}
