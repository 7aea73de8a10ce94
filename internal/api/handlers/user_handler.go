package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/digitallife/lessonhub/internal/domain/entities"
)

// UserService defines the account operations used by the handler.
type UserService interface {
	GetOrCreate(ctx context.Context, email string) (*entities.User, bool, error)
	Upsert(ctx context.Context, email, name, photoURL string) (bool, error)
	Stats(ctx context.Context, email string) (*entities.UserStats, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// UserHandler handles user account requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUser handles GET /user?email=... Accounts are provisioned implicitly:
// an unknown email gets a default account and a 201, an existing one comes
// back with a 200 and a refreshed last login.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user, created, err := h.service.GetOrCreate(r.Context(), email)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, user)
}

type upsertUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpsertUser handles PUT /users
func (h *UserHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var payload upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	upserted, err := h.service.Upsert(r.Context(), payload.Email, payload.Name, payload.PhotoURL)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	message := "user updated"
	if upserted {
		message = "user created"
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"upserted": upserted,
		"message":  message,
	})
}

// UserStats handles GET /user-stats?email=...
func (h *UserHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	stats, err := h.service.Stats(r.Context(), email)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// IsAdmin handles GET /users/admin/{email}
func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}
