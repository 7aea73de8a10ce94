package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// FavoriteService defines the favorite operations used by the handler.
type FavoriteService interface {
	AddFavorite(ctx context.Context, userEmail, lessonID string) error
}

// FavoriteHandler handles favorite requests
type FavoriteHandler struct {
	service FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type favoriteRequest struct {
	UserEmail string `json:"userEmail"`
	LessonID  string `json:"lessonId"`
}

// AddFavorite handles POST /favorites. A duplicate (userEmail, lessonId)
// pair is rejected as a client error.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var payload favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddFavorite(r.Context(), payload.UserEmail, payload.LessonID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
