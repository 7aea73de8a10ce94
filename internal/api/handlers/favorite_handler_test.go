package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/digitallife/lessonhub/internal/api/handlers"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

type stubFavoriteService struct {
	userEmail string
	lessonID  string
	err       error
}

func (s *stubFavoriteService) AddFavorite(ctx context.Context, userEmail, lessonID string) error {
	s.userEmail = userEmail
	s.lessonID = lessonID
	return s.err
}

func TestFavoriteHandler_AddFavorite(t *testing.T) {
	service := &stubFavoriteService{}
	handler := handlers.NewFavoriteHandler(service)

	body := `{"userEmail":"u@example.com","lessonId":"l1"}`
	req := httptest.NewRequest("POST", "/favorites", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.AddFavorite(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u@example.com", service.userEmail)
	assert.Equal(t, "l1", service.lessonID)

	var response map[string]bool
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response["success"])
}

func TestFavoriteHandler_AddFavorite_Duplicate(t *testing.T) {
	service := &stubFavoriteService{err: apperrors.NewConflictError("favorite already exists")}
	handler := handlers.NewFavoriteHandler(service)

	body := `{"userEmail":"u@example.com","lessonId":"l1"}`
	req := httptest.NewRequest("POST", "/favorites", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.AddFavorite(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "favorite already exists", response["error"])
}

func TestFavoriteHandler_AddFavorite_InvalidPayload(t *testing.T) {
	handler := handlers.NewFavoriteHandler(&stubFavoriteService{})

	req := httptest.NewRequest("POST", "/favorites", strings.NewReader("{"))
	w := httptest.NewRecorder()
	handler.AddFavorite(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
