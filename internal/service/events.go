package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/tableside/api/internal/database"
)

// EventStore appends to the session audit trail.
type EventStore interface {
	CreateSessionEvent(ctx context.Context, arg database.CreateSessionEventParams) (database.SessionEvent, error)
}

// Broadcaster pushes an event to live floor clients. Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(locationID, sessionID uuid.UUID, eventType string, payload []byte) error
}

// Publisher hands an event to a message broker. Satisfied by *queue.Publisher.
type Publisher interface {
	Publish(ctx context.Context, locationID, sessionID uuid.UUID, eventType string, payload []byte) error
}

// EventRecorder writes session events to every configured sink. Each sink is
// best-effort: failures are logged and never returned.
type EventRecorder struct {
	store EventStore
	hub   Broadcaster
	pub   Publisher
}

// NewEventRecorder accepts nil for any sink it should skip.
func NewEventRecorder(store EventStore, hub Broadcaster, pub Publisher) *EventRecorder {
	return &EventRecorder{store: store, hub: hub, pub: pub}
}

// RecordSessionEvent marshals payload and fans it out.
func (r *EventRecorder) RecordSessionEvent(ctx context.Context, locationID, sessionID uuid.UUID, eventType string, payload any) {
	body := []byte("{}")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			log.Printf("ERROR: marshal %s event: %v", eventType, err)
			return
		}
	}

	if r.store != nil {
		if _, err := r.store.CreateSessionEvent(ctx, database.CreateSessionEventParams{
			LocationID: locationID,
			SessionID:  sessionID,
			EventType:  eventType,
			Payload:    body,
		}); err != nil {
			log.Printf("WARN: record %s event for session %s: %v", eventType, sessionID, err)
		}
	}
	if r.hub != nil {
		if err := r.hub.Broadcast(locationID, sessionID, eventType, body); err != nil {
			log.Printf("WARN: broadcast %s event: %v", eventType, err)
		}
	}
	if r.pub != nil {
		if err := r.pub.Publish(ctx, locationID, sessionID, eventType, body); err != nil {
			log.Printf("WARN: publish %s event: %v", eventType, err)
		}
	}
}

// pendingEvent is queued inside a transaction and recorded after commit.
type pendingEvent struct {
	eventType string
	payload   any
}

func (s *FloorService) flushEvents(ctx context.Context, locationID, sessionID uuid.UUID, events []pendingEvent) {
	for _, ev := range events {
		s.events.RecordSessionEvent(ctx, locationID, sessionID, ev.eventType, ev.payload)
	}
}

// RecordSessionEvent appends an audit event through the configured sinks.
func (s *FloorService) RecordSessionEvent(ctx context.Context, locationID, sessionID uuid.UUID, eventType string, payload any) {
	s.events.RecordSessionEvent(ctx, locationID, sessionID, eventType, payload)
}
