package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
	"github.com/tableside/api/internal/middleware"
	"github.com/tableside/api/internal/service"
)

// maxSyncBodyBytes caps the client session snapshot accepted by SyncOrder.
const maxSyncBodyBytes = 1 << 20

// FloorServicer defines the service methods needed by floor handlers.
// Satisfied by *service.FloorService; narrow interface for testability.
type FloorServicer interface {
	EnsureSessionForTable(ctx context.Context, locationID uuid.UUID, tableNumber string, guestCount int32, serverID *uuid.UUID) (uuid.UUID, error)
	GetOpenSessionIDForTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (uuid.UUID, error)
	SyncOrder(ctx context.Context, locationID uuid.UUID, tableNumber string, state service.StoreTableSessionState) (uuid.UUID, error)
	GetOrderForTable(ctx context.Context, locationID uuid.UUID, tableNumber string) (*service.TableOrder, error)
	CloseOrderForTable(ctx context.Context, locationID uuid.UUID, tableNumber string, payment *service.PaymentInput, opts service.CloseOptions) (*service.CloseResult, error)
	AdvanceOrderWaveStatus(ctx context.Context, locationID uuid.UUID, tableNumber string, wave int32, target database.OrderItemStatus) (int, error)
	CreateNextWave(ctx context.Context, sessionID uuid.UUID) (database.Order, error)
	GetOrderIDForSessionAndWave(ctx context.Context, sessionID uuid.UUID, wave int32) (uuid.UUID, error)
	AddSeatToSession(ctx context.Context, sessionID uuid.UUID) (database.Seat, error)
	FireWave(ctx context.Context, orderID uuid.UUID) (database.Order, error)
	MarkItem(ctx context.Context, itemID uuid.UUID, target database.OrderItemStatus) (database.OrderItem, error)
}

// FloorHandler handles table session, wave and close endpoints.
type FloorHandler struct {
	svc FloorServicer
}

// NewFloorHandler creates a new FloorHandler.
func NewFloorHandler(svc FloorServicer) *FloorHandler {
	return &FloorHandler{svc: svc}
}

// RegisterRoutes registers every floor endpoint on the given Chi router.
// Expected to be mounted inside a location-scoped subrouter: /locations/{lid}
func (h *FloorHandler) RegisterRoutes(r chi.Router) {
	h.RegisterFrontOfHouseRoutes(r)
	h.RegisterKitchenRoutes(r)
}

// RegisterFrontOfHouseRoutes registers seating, order sync and close.
func (h *FloorHandler) RegisterFrontOfHouseRoutes(r chi.Router) {
	r.Post("/tables/{table}/session", h.EnsureSession)
	r.Get("/tables/{table}/session", h.GetSession)
	r.Put("/tables/{table}/order", h.SyncOrder)
	r.Post("/tables/{table}/close", h.Close)
	r.Post("/sessions/{sid}/waves", h.CreateWave)
	r.Post("/sessions/{sid}/seats", h.AddSeat)
}

// RegisterKitchenRoutes registers the endpoints kitchen staff also use.
func (h *FloorHandler) RegisterKitchenRoutes(r chi.Router) {
	r.Get("/tables/{table}/order", h.GetOrder)
	r.Post("/tables/{table}/waves/{wave}/advance", h.AdvanceWave)
	r.Get("/sessions/{sid}/waves/{wave}", h.GetWave)
	r.Post("/orders/{id}/fire", h.FireWave)
	r.Patch("/items/{id}/status", h.UpdateItemStatus)
}

// --- Request / Response types ---

type ensureSessionRequest struct {
	GuestCount int32  `json:"guest_count"`
	ServerID   string `json:"server_id"`
}

type sessionIDResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type tableOrderResponse struct {
	Order *service.TableOrder `json:"order"`
}

type closeRequest struct {
	Force   bool            `json:"force"`
	Payment *paymentRequest `json:"payment"`
}

type paymentRequest struct {
	Amount    string `json:"amount"`
	TipAmount string `json:"tip_amount"`
	Method    string `json:"method"`
}

type itemStatusRequest struct {
	Status string `json:"status"`
}

type advanceResponse struct {
	Advanced int `json:"advanced"`
}

type waveOrderResponse struct {
	OrderID uuid.UUID `json:"order_id"`
}

type orderResponse struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   *uuid.UUID `json:"session_id"`
	LocationID  uuid.UUID  `json:"location_id"`
	TableID     uuid.UUID  `json:"table_id"`
	Wave        int32      `json:"wave"`
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status"`
	Subtotal    string     `json:"subtotal"`
	Total       string     `json:"total"`
	FiredAt     *time.Time `json:"fired_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type seatResponse struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	SeatNumber int32     `json:"seat_number"`
	Status     string    `json:"status"`
}

type itemResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	Name            string     `json:"name"`
	Price           string     `json:"price"`
	Quantity        int32      `json:"quantity"`
	Seat            int32      `json:"seat"`
	Status          string     `json:"status"`
	SentToKitchenAt *time.Time `json:"sent_to_kitchen_at"`
	Voided          bool       `json:"voided"`
}

// --- Table handlers ---

// EnsureSession handles POST /locations/{lid}/tables/{table}/session.
func (h *FloorHandler) EnsureSession(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	var req ensureSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	if req.GuestCount < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "guest_count must be >= 0"})
		return
	}

	var serverID *uuid.UUID
	if req.ServerID != "" {
		id, err := uuid.Parse(req.ServerID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid server_id"})
			return
		}
		serverID = &id
	}

	sessionID, err := h.svc.EnsureSessionForTable(r.Context(), locationID, tableNumber, req.GuestCount, serverID)
	if err != nil {
		writeServiceError(w, "ensure session", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// GetSession handles GET /locations/{lid}/tables/{table}/session.
func (h *FloorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	sessionID, err := h.svc.GetOpenSessionIDForTable(r.Context(), locationID, tableNumber)
	if err != nil {
		writeServiceError(w, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// SyncOrder handles PUT /locations/{lid}/tables/{table}/order.
func (h *FloorHandler) SyncOrder(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	var state service.StoreTableSessionState
	r.Body = http.MaxBytesReader(w, r.Body, maxSyncBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	sessionID, err := h.svc.SyncOrder(r.Context(), locationID, tableNumber, state)
	if err != nil {
		writeServiceError(w, "sync order", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionIDResponse{SessionID: sessionID})
}

// GetOrder handles GET /locations/{lid}/tables/{table}/order.
func (h *FloorHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	order, err := h.svc.GetOrderForTable(r.Context(), locationID, tableNumber)
	if err != nil {
		writeServiceError(w, "get table order", err)
		return
	}
	writeJSON(w, http.StatusOK, tableOrderResponse{Order: order})
}

// Close handles POST /locations/{lid}/tables/{table}/close.
func (h *FloorHandler) Close(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req closeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	if req.Force && !claims.HasRole(enum.UserRoleOwner, enum.UserRoleManager) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "force close requires OWNER or MANAGER"})
		return
	}

	var payment *service.PaymentInput
	if req.Payment != nil {
		p, err := parsePayment(req.Payment)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		payment = p
	}

	result, err := h.svc.CloseOrderForTable(r.Context(), locationID, tableNumber, payment, service.CloseOptions{Force: req.Force})
	if err != nil {
		writeServiceError(w, "close table", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AdvanceWave handles POST /locations/{lid}/tables/{table}/waves/{wave}/advance.
func (h *FloorHandler) AdvanceWave(w http.ResponseWriter, r *http.Request) {
	locationID, tableNumber, ok := tableParams(w, r)
	if !ok {
		return
	}

	wave, ok := waveParam(w, r)
	if !ok {
		return
	}

	var req itemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	target, err := service.ParseItemTarget(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	advanced, err := h.svc.AdvanceOrderWaveStatus(r.Context(), locationID, tableNumber, wave, target)
	if err != nil {
		writeServiceError(w, "advance wave", err)
		return
	}
	writeJSON(w, http.StatusOK, advanceResponse{Advanced: advanced})
}

// --- Session handlers ---

// CreateWave handles POST /locations/{lid}/sessions/{sid}/waves.
func (h *FloorHandler) CreateWave(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	order, err := h.svc.CreateNextWave(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, "create wave", err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetWave handles GET /locations/{lid}/sessions/{sid}/waves/{wave}.
func (h *FloorHandler) GetWave(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	wave, ok := waveParam(w, r)
	if !ok {
		return
	}

	orderID, err := h.svc.GetOrderIDForSessionAndWave(r.Context(), sessionID, wave)
	if err != nil {
		writeServiceError(w, "get wave", err)
		return
	}
	writeJSON(w, http.StatusOK, waveOrderResponse{OrderID: orderID})
}

// AddSeat handles POST /locations/{lid}/sessions/{sid}/seats.
func (h *FloorHandler) AddSeat(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	seat, err := h.svc.AddSeatToSession(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, "add seat", err)
		return
	}
	writeJSON(w, http.StatusCreated, seatResponse{
		ID:         seat.ID,
		SessionID:  seat.SessionID,
		SeatNumber: seat.SeatNumber,
		Status:     string(seat.Status),
	})
}

// --- Order / item handlers ---

// FireWave handles POST /locations/{lid}/orders/{id}/fire.
func (h *FloorHandler) FireWave(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.svc.FireWave(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, "fire wave", err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateItemStatus handles PATCH /locations/{lid}/items/{id}/status.
func (h *FloorHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	var req itemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	target, err := service.ParseItemTarget(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	item, err := h.svc.MarkItem(r.Context(), itemID, target)
	if err != nil {
		writeServiceError(w, "update item status", err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// --- Helpers ---

// tableParams reads {lid} and the unescaped {table} path parameters.
func tableParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	locationID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid location ID"})
		return uuid.Nil, "", false
	}

	tableNumber, err := url.PathUnescape(chi.URLParam(r, "table"))
	if err != nil || strings.TrimSpace(tableNumber) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table number"})
		return uuid.Nil, "", false
	}
	return locationID, tableNumber, true
}

func waveParam(w http.ResponseWriter, r *http.Request) (int32, bool) {
	wave, err := strconv.ParseInt(chi.URLParam(r, "wave"), 10, 32)
	if err != nil || wave < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid wave"})
		return 0, false
	}
	return int32(wave), true
}

func parsePayment(req *paymentRequest) (*service.PaymentInput, error) {
	p := &service.PaymentInput{Method: database.PaymentMethod(req.Method)}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, errors.New("invalid payment amount")
	}
	p.Amount = amount

	tip, err := parseAmount(req.TipAmount)
	if err != nil {
		return nil, errors.New("invalid tip amount")
	}
	p.TipAmount = tip
	return p, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

func toOrderResponse(o database.Order) orderResponse {
	resp := orderResponse{
		ID:          o.ID,
		LocationID:  o.LocationID,
		TableID:     o.TableID,
		Wave:        o.Wave,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Subtotal:    numericToString(o.Subtotal),
		Total:       numericToString(o.Total),
		CreatedAt:   o.CreatedAt,
	}
	if o.SessionID.Valid {
		id := uuid.UUID(o.SessionID.Bytes)
		resp.SessionID = &id
	}
	if o.FiredAt.Valid {
		t := o.FiredAt.Time
		resp.FiredAt = &t
	}
	return resp
}

func toItemResponse(it database.OrderItem) itemResponse {
	resp := itemResponse{
		ID:       it.ID,
		OrderID:  it.OrderID,
		Name:     it.ItemName,
		Price:    numericToString(it.ItemPrice),
		Quantity: it.Quantity,
		Seat:     it.Seat,
		Status:   string(it.Status),
		Voided:   it.VoidedAt.Valid,
	}
	if it.SentToKitchenAt.Valid {
		t := it.SentToKitchenAt.Time
		resp.SentToKitchenAt = &t
	}
	return resp
}

// writeServiceError maps floor service errors to HTTP responses. Anything
// unrecognized is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var blocked *service.CloseBlockedError
	if errors.As(err, &blocked) {
		body := map[string]interface{}{
			"error":  blocked.Error(),
			"reason": blocked.Reason,
		}
		switch blocked.Reason {
		case service.ReasonUnfinishedItems:
			items := make([]itemResponse, len(blocked.Items))
			for i, it := range blocked.Items {
				items[i] = toItemResponse(it)
			}
			body["items"] = items
		case service.ReasonUnpaidBalance:
			body["remaining"] = blocked.Remaining.StringFixed(2)
			body["session_total"] = blocked.SessionTotal.StringFixed(2)
			body["payments_total"] = blocked.PaymentsTotal.StringFixed(2)
		}
		writeJSON(w, http.StatusConflict, body)
		return
	}

	var advErr *service.AdvanceError
	if errors.As(err, &advErr) {
		status, msg := serviceStatus(advErr.Err)
		if status == http.StatusInternalServerError {
			log.Printf("ERROR: %s: %v", op, err)
		}
		writeJSON(w, status, map[string]interface{}{
			"error":    msg,
			"item_id":  advErr.ItemID,
			"advanced": advErr.Advanced,
		})
		return
	}

	if errors.Is(err, service.ErrInvalidTip) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  err.Error(),
			"reason": service.ReasonInvalidTip,
		})
		return
	}

	status, msg := serviceStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s: %v", op, err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func serviceStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrSessionNotOpen),
		errors.Is(err, service.ErrWaveAlreadyFired),
		errors.Is(err, service.ErrInvalidItemTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidItemStatus),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidWave),
		errors.Is(err, service.ErrInvalidGuestCount):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
