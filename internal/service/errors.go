package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
)

// Errors returned by the floor service.
var (
	ErrUnauthorized          = errors.New("Unauthorized or location not found")
	ErrTableNotFound         = errors.New("table not found")
	ErrNoSession             = errors.New("no open session for table")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionNotOpen        = errors.New("Cannot add items: session is not open")
	ErrOrderNotFound         = errors.New("order not found")
	ErrWaveAlreadyFired      = errors.New("wave already fired")
	ErrItemNotFound          = errors.New("order item not found")
	ErrInvalidItemStatus     = errors.New("status must be one of preparing, ready, served")
	ErrInvalidItemTransition = errors.New("invalid item status transition")
	ErrInvalidTip            = errors.New("tip amount must be >= 0")
	ErrInvalidPaymentAmount  = errors.New("payment amount must be >= 0")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidWave           = errors.New("wave must be >= 1")
	ErrInvalidGuestCount     = fmt.Errorf("guest count must be <= %d", maxGuestCount)
)

// Reasons carried by CloseBlockedError.
const (
	ReasonUnfinishedItems = "unfinished_items"
	ReasonUnpaidBalance   = "unpaid_balance"
	ReasonSessionNotOpen  = "session_not_open"
	ReasonInvalidTip      = "invalid_tip"
)

// CloseBlockedError reports why a session may not close yet.
type CloseBlockedError struct {
	Reason        string
	Items         []database.OrderItem
	Remaining     decimal.Decimal
	SessionTotal  decimal.Decimal
	PaymentsTotal decimal.Decimal
}

func (e *CloseBlockedError) Error() string {
	switch e.Reason {
	case ReasonUnfinishedItems:
		return fmt.Sprintf("Cannot close: %d item(s) still in progress", len(e.Items))
	case ReasonUnpaidBalance:
		return fmt.Sprintf("Cannot close: %s remaining on balance", e.Remaining.StringFixed(2))
	case ReasonSessionNotOpen:
		return "Cannot close: session is not open"
	}
	return "Cannot close session: " + e.Reason
}

// AdvanceError is returned when a bulk wave advance stops part way.
// Items before ItemID stay advanced.
type AdvanceError struct {
	ItemID   uuid.UUID
	Advanced int
	Err      error
}

func (e *AdvanceError) Error() string {
	return fmt.Sprintf("advance item %s (after %d advanced): %v", e.ItemID, e.Advanced, e.Err)
}

func (e *AdvanceError) Unwrap() error { return e.Err }
