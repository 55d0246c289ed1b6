package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
)

// SyncSeatsWithGuestCount makes seats 1..guestCount active and every seat
// above guestCount inactive. Existing rows are reactivated before new ones
// are inserted.
func (s *FloorService) SyncSeatsWithGuestCount(ctx context.Context, sessionID uuid.UUID, guestCount int32) error {
	return syncSeats(ctx, s.store, sessionID, guestCount)
}

func syncSeats(ctx context.Context, store SessionStore, sessionID uuid.UUID, guestCount int32) error {
	if guestCount < 0 {
		guestCount = 0
	}

	seats, err := store.ListSeatsBySession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list seats: %w", err)
	}
	byNumber := make(map[int32]database.Seat, len(seats))
	for _, seat := range seats {
		byNumber[seat.SeatNumber] = seat
	}

	for n := int32(1); n <= guestCount; n++ {
		seat, ok := byNumber[n]
		if !ok {
			if _, err := store.CreateSeat(ctx, database.CreateSeatParams{
				SessionID:  sessionID,
				SeatNumber: n,
			}); err != nil {
				return fmt.Errorf("create seat %d: %w", n, err)
			}
			continue
		}
		if seat.Status != database.SeatStatusActive {
			if err := store.UpdateSeatStatus(ctx, database.UpdateSeatStatusParams{
				ID:     seat.ID,
				Status: database.SeatStatusActive,
			}); err != nil {
				return fmt.Errorf("activate seat %d: %w", n, err)
			}
		}
	}

	for _, seat := range seats {
		if seat.SeatNumber > guestCount && seat.Status == database.SeatStatusActive {
			if err := store.UpdateSeatStatus(ctx, database.UpdateSeatStatusParams{
				ID:     seat.ID,
				Status: database.SeatStatusInactive,
			}); err != nil {
				return fmt.Errorf("deactivate seat %d: %w", seat.SeatNumber, err)
			}
		}
	}
	return nil
}

// AddSeatToSession opens the next seat after the highest active one and
// raises the session's guest count to match.
func (s *FloorService) AddSeatToSession(ctx context.Context, sessionID uuid.UUID) (database.Seat, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return database.Seat{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	sess, err := store.GetTableSessionForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Seat{}, ErrSessionNotFound
		}
		return database.Seat{}, fmt.Errorf("get session: %w", err)
	}
	if _, err := s.VerifyLocationAccess(ctx, sess.LocationID); err != nil {
		return database.Seat{}, err
	}
	if err := CanAddItems(sess.Status); err != nil {
		return database.Seat{}, err
	}

	seats, err := store.ListSeatsBySession(ctx, sessionID)
	if err != nil {
		return database.Seat{}, fmt.Errorf("list seats: %w", err)
	}

	var next int32 = 1
	for _, seat := range seats {
		if seat.Status == database.SeatStatusActive && seat.SeatNumber >= next {
			next = seat.SeatNumber + 1
		}
	}
	if next > maxGuestCount {
		return database.Seat{}, ErrInvalidGuestCount
	}
	var existing *database.Seat
	for i := range seats {
		if seats[i].SeatNumber == next {
			existing = &seats[i]
		}
	}

	var seat database.Seat
	if existing != nil {
		if err := store.UpdateSeatStatus(ctx, database.UpdateSeatStatusParams{
			ID:     existing.ID,
			Status: database.SeatStatusActive,
		}); err != nil {
			return database.Seat{}, fmt.Errorf("activate seat: %w", err)
		}
		seat = *existing
		seat.Status = database.SeatStatusActive
	} else {
		seat, err = store.CreateSeat(ctx, database.CreateSeatParams{SessionID: sessionID, SeatNumber: next})
		if err != nil {
			return database.Seat{}, fmt.Errorf("create seat: %w", err)
		}
	}

	if sess.GuestCount < next {
		if _, err := store.UpdateSessionGuestCount(ctx, database.UpdateSessionGuestCountParams{
			ID:         sessionID,
			GuestCount: next,
		}); err != nil {
			return database.Seat{}, fmt.Errorf("update guest count: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return database.Seat{}, fmt.Errorf("commit tx: %w", err)
	}
	return seat, nil
}
