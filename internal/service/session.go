package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
)

// getOrCreateSession returns the table's open session, inserting one when
// none exists. A concurrent winner's row is re-read, so every caller lands
// on the same session. created is true only for the inserting caller.
func (s *FloorService) getOrCreateSession(ctx context.Context, store FloorStore, loc database.Location, tableID uuid.UUID, guestCount int32, serverID *uuid.UUID) (database.TableSession, bool, error) {
	key := database.GetOpenSessionForTableParams{LocationID: loc.ID, TableID: tableID}

	sess, err := store.GetOpenSessionForTable(ctx, key)
	if err == nil {
		return sess, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.TableSession{}, false, fmt.Errorf("get open session: %w", err)
	}

	periods, err := store.ListServicePeriodsByLocation(ctx, loc.ID)
	if err != nil {
		return database.TableSession{}, false, fmt.Errorf("list service periods: %w", err)
	}
	periodID := pgtype.UUID{}
	if p := ResolveServicePeriod(periods, s.now(), loc.Timezone); p != nil {
		periodID = pgUUID(p.ID)
	}

	server := pgtype.UUID{}
	if serverID != nil {
		server = pgUUID(*serverID)
	}

	sess, err = store.CreateTableSession(ctx, database.CreateTableSessionParams{
		LocationID:      loc.ID,
		TableID:         tableID,
		ServerID:        server,
		GuestCount:      guestCount,
		Source:          enum.SessionSourceWalkIn,
		ServicePeriodID: periodID,
	})
	if err == nil {
		return sess, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.TableSession{}, false, fmt.Errorf("create session: %w", err)
	}

	// Lost the race on the open-session index.
	sess, err = store.GetOpenSessionForTable(ctx, key)
	if err != nil {
		return database.TableSession{}, false, fmt.Errorf("re-read open session: %w", err)
	}
	return sess, false, nil
}

// GetOrCreateSessionForTable returns the open session id for a table,
// creating it and its seats when the table is not yet seated. An existing
// session's guest count is left alone. Seat sync failure after creation is
// logged and the new session id is still returned.
func (s *FloorService) GetOrCreateSessionForTable(ctx context.Context, locationID, tableID uuid.UUID, guestCount int32, serverID *uuid.UUID) (uuid.UUID, error) {
	if err := checkGuestCount(float64(guestCount)); err != nil {
		return uuid.Nil, err
	}
	loc, err := s.store.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("get location: %w", err)
	}
	return s.getOrCreateStandalone(ctx, loc, tableID, guestCount, serverID)
}

func (s *FloorService) getOrCreateStandalone(ctx context.Context, loc database.Location, tableID uuid.UUID, guestCount int32, serverID *uuid.UUID) (uuid.UUID, error) {
	sess, created, err := s.getOrCreateSession(ctx, s.store, loc, tableID, guestCount, serverID)
	if err != nil {
		return uuid.Nil, err
	}
	if !created {
		return sess.ID, nil
	}

	if err := syncSeats(ctx, s.store, sess.ID, sess.GuestCount); err != nil {
		log.Printf("ERROR: sync seats for new session %s: %v", sess.ID, err)
	}
	s.events.RecordSessionEvent(ctx, loc.ID, sess.ID, enum.EventGuestSeated, map[string]any{
		"table_id":    tableID,
		"guest_count": sess.GuestCount,
	})
	return sess.ID, nil
}

// EnsureSessionForTable seats a table by number, returning its open session.
func (s *FloorService) EnsureSessionForTable(ctx context.Context, locationID uuid.UUID, tableNumber string, guestCount int32, serverID *uuid.UUID) (uuid.UUID, error) {
	loc, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return uuid.Nil, err
	}
	if err := checkGuestCount(float64(guestCount)); err != nil {
		return uuid.Nil, err
	}
	if guestCount < 1 {
		guestCount = 1
	}
	if serverID == nil {
		serverID = callerID(ctx)
	}
	return s.getOrCreateStandalone(ctx, loc, tableID, guestCount, serverID)
}

// GetOpenSessionIDForTable returns ErrNoSession when the table is idle.
func (s *FloorService) GetOpenSessionIDForTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (uuid.UUID, error) {
	_, tableID, err := s.accessTable(ctx, locationID, tableNumber)
	if err != nil {
		return uuid.Nil, err
	}
	sess, err := s.store.GetOpenSessionForTable(ctx, database.GetOpenSessionForTableParams{
		LocationID: locationID,
		TableID:    tableID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNoSession
		}
		return uuid.Nil, fmt.Errorf("get open session: %w", err)
	}
	return sess.ID, nil
}
