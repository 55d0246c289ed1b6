package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// SessionTotals is the money summary persisted on a session.
type SessionTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	TipAmount      decimal.Decimal `json:"tip_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	PaidTotal      decimal.Decimal `json:"paid_total"`
}

// RecalculateSessionTotals recomputes and stores a session's totals from
// its non-voided items and its payments.
func (s *FloorService) RecalculateSessionTotals(ctx context.Context, sessionID uuid.UUID) (SessionTotals, error) {
	sess, err := s.store.GetTableSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SessionTotals{}, ErrSessionNotFound
		}
		return SessionTotals{}, fmt.Errorf("get session: %w", err)
	}
	loc, err := s.VerifyLocationAccess(ctx, sess.LocationID)
	if err != nil {
		return SessionTotals{}, err
	}
	return recalculateTotals(ctx, s.store, loc, sess)
}

func recalculateTotals(ctx context.Context, store FloorStore, loc database.Location, sess database.TableSession) (SessionTotals, error) {
	lineSum, err := store.SumSessionLineTotals(ctx, pgUUID(sess.ID))
	if err != nil {
		return SessionTotals{}, fmt.Errorf("sum line totals: %w", err)
	}
	pays, err := store.SumPaymentsBySession(ctx, sess.ID)
	if err != nil {
		return SessionTotals{}, fmt.Errorf("sum payments: %w", err)
	}

	t := computeTotals(
		numericToDecimal(lineSum),
		numericToDecimal(loc.TaxRate),
		numericToDecimal(loc.ServiceChargeRate),
		numericToDecimal(sess.DiscountAmount),
		numericToDecimal(pays.TipTotal),
		numericToDecimal(pays.AmountTotal),
	)

	if err := store.UpdateSessionTotals(ctx, database.UpdateSessionTotalsParams{
		ID:            sess.ID,
		Subtotal:      decimalToNumeric(t.Subtotal),
		TaxAmount:     decimalToNumeric(t.TaxAmount),
		ServiceCharge: decimalToNumeric(t.ServiceCharge),
		TipAmount:     decimalToNumeric(t.TipAmount),
		Total:         decimalToNumeric(t.Total),
		PaidTotal:     decimalToNumeric(t.PaidTotal),
	}); err != nil {
		return SessionTotals{}, fmt.Errorf("update session totals: %w", err)
	}
	return t, nil
}

// computeTotals: total = subtotal + tax + service - discount, floored at
// zero. Tips ride alongside and never count toward the bill.
func computeTotals(subtotal, taxRate, serviceRate, discount, tips, paid decimal.Decimal) SessionTotals {
	tax := subtotal.Mul(taxRate).Round(2)
	service := subtotal.Mul(serviceRate).Round(2)
	total := subtotal.Add(tax).Add(service).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return SessionTotals{
		Subtotal:       subtotal.Round(2),
		TaxAmount:      tax,
		ServiceCharge:  service,
		TipAmount:      tips.Round(2),
		DiscountAmount: discount.Round(2),
		Total:          total.Round(2),
		PaidTotal:      paid.Round(2),
	}
}
