package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tableside/api/internal/auth"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
	"golang.org/x/crypto/bcrypt"
)

// StaffStore defines the database methods needed by staff handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type StaffStore interface {
	ListUsersByLocation(ctx context.Context, locationID uuid.UUID) ([]database.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	CreateUser(ctx context.Context, arg database.CreateUserParams) (database.User, error)
	UpdateUser(ctx context.Context, arg database.UpdateUserParams) (database.User, error)
	DeactivateUser(ctx context.Context, arg database.DeactivateUserParams) (uuid.UUID, error)
}

const errOwnerOnly = "only an OWNER may manage OWNER accounts"

// StaffHandler manages the accounts that work a location.
type StaffHandler struct {
	store StaffStore
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(store StaffStore) *StaffHandler {
	return &StaffHandler{store: store}
}

// RegisterRoutes registers staff endpoints. Expected to be mounted inside a
// location-scoped subrouter restricted to OWNER and MANAGER: /locations/{lid}/staff
func (h *StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type createStaffRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type updateStaffRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type staffResponse struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"location_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toStaffResponse(u database.User) staffResponse {
	return staffResponse{
		ID:         u.ID,
		LocationID: u.LocationID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// --- Handlers ---

// List returns all active staff for the location.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid location ID"})
		return
	}

	users, err := h.store.ListUsersByLocation(r.Context(), locationID)
	if err != nil {
		log.Printf("ERROR: list staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]staffResponse, len(users))
	for i, u := range users {
		resp[i] = toStaffResponse(u)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create adds a staff account to the location.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	locationID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid location ID"})
		return
	}

	var req createStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email, password, full_name, and role are required"})
		return
	}
	if msg := validateStaff(req.Email, req.Role); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	if !canAssignRole(auth.ClaimsFromContext(r.Context()), req.Role) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": errOwnerOnly})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ERROR: create staff: hash password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	user, err := h.store.CreateUser(r.Context(), database.CreateUserParams{
		LocationID:     locationID,
		Email:          req.Email,
		HashedPassword: string(hashed),
		FullName:       req.FullName,
		Role:           database.UserRole(req.Role),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "email already exists"})
			return
		}
		log.Printf("ERROR: create staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toStaffResponse(user))
}

// Update changes a staff member's email, name or role.
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	locationID, userID, ok := staffParams(w, r)
	if !ok {
		return
	}

	var req updateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.FullName == "" || req.Role == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email, full_name, and role are required"})
		return
	}
	if msg := validateStaff(req.Email, req.Role); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if status, msg := h.checkTarget(r.Context(), claims, userID, locationID); status != 0 {
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	if !canAssignRole(claims, req.Role) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": errOwnerOnly})
		return
	}

	user, err := h.store.UpdateUser(r.Context(), database.UpdateUserParams{
		Email:      req.Email,
		FullName:   req.FullName,
		Role:       database.UserRole(req.Role),
		ID:         userID,
		LocationID: locationID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "staff member not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "email already exists"})
			return
		}
		log.Printf("ERROR: update staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(user))
}

// Delete deactivates a staff account. Callers cannot deactivate themselves.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	locationID, userID, ok := staffParams(w, r)
	if !ok {
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims != nil && claims.UserID == userID {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "cannot deactivate your own account"})
		return
	}
	if status, msg := h.checkTarget(r.Context(), claims, userID, locationID); status != 0 {
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	_, err := h.store.DeactivateUser(r.Context(), database.DeactivateUserParams{
		ID:         userID,
		LocationID: locationID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "staff member not found"})
			return
		}
		log.Printf("ERROR: deactivate staff: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

func staffParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	locationID, err := uuid.Parse(chi.URLParam(r, "lid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid location ID"})
		return uuid.Nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid staff ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return locationID, userID, true
}

// checkTarget returns a non-zero status when the caller may not modify the
// target account. A MANAGER may not touch OWNER accounts.
func (h *StaffHandler) checkTarget(ctx context.Context, claims *auth.Claims, userID, locationID uuid.UUID) (int, string) {
	if claims.HasRole(enum.UserRoleOwner) {
		return 0, ""
	}
	target, err := h.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return http.StatusNotFound, "staff member not found"
		}
		log.Printf("ERROR: load staff: %v", err)
		return http.StatusInternalServerError, "internal server error"
	}
	if target.LocationID != locationID {
		return http.StatusNotFound, "staff member not found"
	}
	if target.Role == database.UserRoleOWNER {
		return http.StatusForbidden, errOwnerOnly
	}
	return 0, ""
}

func canAssignRole(claims *auth.Claims, role string) bool {
	return role != enum.UserRoleOwner || claims.HasRole(enum.UserRoleOwner)
}

func validateStaff(email, role string) string {
	if !strings.Contains(email, "@") {
		return "invalid email format"
	}
	if !isValidRole(role) {
		return "invalid role"
	}
	return ""
}

func isValidRole(role string) bool {
	switch role {
	case enum.UserRoleOwner, enum.UserRoleManager,
		enum.UserRoleServer, enum.UserRoleKitchen:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
