package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/auth"
	"github.com/tableside/api/internal/database"
)

// FloorService runs the table session, wave and close workflows.
type FloorService struct {
	pool     Pool
	newStore NewFloorStore
	store    FloorStore
	events   *EventRecorder
	tables   TableCache
	now      func() time.Time
}

// NewFloorService wires the service. events and tables may be nil.
func NewFloorService(pool Pool, newStore NewFloorStore, events *EventRecorder, tables TableCache) *FloorService {
	if events == nil {
		events = NewEventRecorder(nil, nil, nil)
	}
	return &FloorService{
		pool:     pool,
		newStore: newStore,
		store:    newStore(pool),
		events:   events,
		tables:   tables,
		now:      time.Now,
	}
}

// VerifyLocationAccess loads the location and checks the caller in ctx may
// act on it. Any miss is ErrUnauthorized so callers cannot probe for ids.
func (s *FloorService) VerifyLocationAccess(ctx context.Context, locationID uuid.UUID) (database.Location, error) {
	claims := auth.ClaimsFromContext(ctx)
	if !claims.CanAccessLocation(locationID) {
		return database.Location{}, ErrUnauthorized
	}
	loc, err := s.store.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Location{}, ErrUnauthorized
		}
		return database.Location{}, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// resolveTable maps a case-insensitive table number to the table id.
func (s *FloorService) resolveTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (uuid.UUID, error) {
	if s.tables != nil {
		id, ok, err := s.tables.GetTableID(ctx, locationID, tableNumber)
		if err != nil {
			log.Printf("WARN: table cache get: %v", err)
		} else if ok {
			return id, nil
		}
	}

	table, err := s.store.GetTableByNumber(ctx, database.GetTableByNumberParams{
		LocationID:  locationID,
		TableNumber: tableNumber,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrTableNotFound
		}
		return uuid.Nil, fmt.Errorf("get table: %w", err)
	}

	if s.tables != nil {
		if err := s.tables.SetTableID(ctx, locationID, tableNumber, table.ID); err != nil {
			log.Printf("WARN: table cache set: %v", err)
		}
	}
	return table.ID, nil
}

// accessTable runs the access guard and then resolves the table.
func (s *FloorService) accessTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (database.Location, uuid.UUID, error) {
	loc, err := s.VerifyLocationAccess(ctx, locationID)
	if err != nil {
		return database.Location{}, uuid.Nil, err
	}
	tableID, err := s.resolveTable(ctx, locationID, tableNumber)
	if err != nil {
		return database.Location{}, uuid.Nil, err
	}
	return loc, tableID, nil
}

// callerID returns the authenticated user, if any.
func callerID(ctx context.Context) *uuid.UUID {
	claims := auth.ClaimsFromContext(ctx)
	if claims == nil || claims.UserID == uuid.Nil {
		return nil
	}
	id := claims.UserID
	return &id
}
