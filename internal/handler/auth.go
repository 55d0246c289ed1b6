package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/auth"
	"github.com/tableside/api/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore is the subset of *database.Queries used to sign staff in.
type AuthStore interface {
	GetUserByEmail(ctx context.Context, email string) (database.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
}

// AuthHandler issues access and refresh tokens to staff accounts.
type AuthHandler struct {
	store     AuthStore
	jwtSecret string
}

func NewAuthHandler(store AuthStore, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
}

type credentials struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type session struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         staffResponse `json:"user"`
}

var errAccountDisabled = errors.New("account disabled")

// Login signs a staff member in by email and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err == nil && bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(creds.Password)) != nil {
		err = pgx.ErrNoRows
	}
	h.issue(w, "login", user, err, "invalid credentials")
}

// Refresh trades a refresh token for a fresh token pair. The account is
// reloaded so role changes and deactivation take effect.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if creds.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh_token is required"})
		return
	}

	userID, err := auth.ValidateRefreshToken(h.jwtSecret, creds.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid refresh token"})
		return
	}
	user, err := h.store.GetUserByID(r.Context(), userID)
	h.issue(w, "refresh", user, err, "user not found")
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return creds, false
	}
	return creds, true
}

// issue writes a token pair for user, or the 401/500 matching lookupErr.
// notFound is the message used when the account cannot be matched.
func (h *AuthHandler) issue(w http.ResponseWriter, op string, user database.User, lookupErr error, notFound string) {
	switch {
	case errors.Is(lookupErr, pgx.ErrNoRows):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": notFound})
		return
	case lookupErr != nil:
		log.Printf("ERROR: %s: load user: %v", op, lookupErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	case !user.IsActive:
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": errAccountDisabled.Error()})
		return
	}

	s, err := h.newSession(user)
	if err != nil {
		log.Printf("ERROR: %s: sign tokens: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *AuthHandler) newSession(user database.User) (session, error) {
	access, err := auth.GenerateToken(h.jwtSecret, user.ID, user.LocationID, string(user.Role))
	if err != nil {
		return session{}, err
	}
	refresh, err := auth.GenerateRefreshToken(h.jwtSecret, user.ID)
	if err != nil {
		return session{}, err
	}
	return session{AccessToken: access, RefreshToken: refresh, User: toStaffResponse(user)}, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}
