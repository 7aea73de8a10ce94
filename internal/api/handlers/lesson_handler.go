package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/digitallife/lessonhub/internal/api/middleware"
	"github.com/digitallife/lessonhub/internal/application/services"
	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
)

// LessonService defines the lesson operations used by the handler.
type LessonService interface {
	List(ctx context.Context, params queries.ListParams, viewer entities.Viewer) (*services.LessonPage, error)
	Get(ctx context.Context, id string) (*entities.Lesson, error)
	Recommend(ctx context.Context, category, tone, excludeID string) ([]*entities.Lesson, error)
	Report(ctx context.Context, lessonID, reporterID, reason string) error
}

// EngagementService defines the engagement operations used by the handler.
type EngagementService interface {
	Toggle(ctx context.Context, lessonID, actorID string, kind repositories.EngagementKind, apply bool) (repositories.EngagementResult, error)
}

// LessonHandler handles lesson listing, detail and engagement requests
type LessonHandler struct {
	lessons    LessonService
	engagement EngagementService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessons LessonService, engagement EngagementService) *LessonHandler {
	return &LessonHandler{
		lessons:    lessons,
		engagement: engagement,
	}
}

// ListLessons handles GET /lessons
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := queries.ListParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Tone:     q.Get("tone"),
		Sort:     q.Get("sort"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
		Access:   q.Get("access"),
	}
	viewer := middleware.ViewerFromContext(r.Context())

	page, err := h.lessons.List(r.Context(), params, viewer)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// GetLesson handles GET /lessons/{id}. The fetch increments the lesson's
// view counter.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := r.PathValue("id")
	if lessonID == "" {
		respondWithError(w, http.StatusBadRequest, "lesson ID is required")
		return
	}

	lesson, err := h.lessons.Get(r.Context(), lessonID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, lesson)
}

type likeRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

// LikeLesson handles POST /lessons/{id}/like
func (h *LessonHandler) LikeLesson(w http.ResponseWriter, r *http.Request) {
	var payload likeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	apply, ok := parseAction(payload.Action, "like", "unlike")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "action must be like or unlike")
		return
	}

	result, err := h.engagement.Toggle(r.Context(), r.PathValue("id"), payload.UserID, repositories.EngagementLike, apply)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"likes":   result.Count,
	})
}

type saveRequest struct {
	UserID string `json:"userId"`
	Action string `json:"action"`
}

// SaveLesson handles POST /lessons/{id}/save
func (h *LessonHandler) SaveLesson(w http.ResponseWriter, r *http.Request) {
	var payload saveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	apply, ok := parseAction(payload.Action, "save", "unsave")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "action must be save or unsave")
		return
	}

	result, err := h.engagement.Toggle(r.Context(), r.PathValue("id"), payload.UserID, repositories.EngagementSave, apply)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"saveCount": result.Count,
	})
}

type reportRequest struct {
	ReporterID string `json:"reporterId"`
	Reason     string `json:"reason"`
}

// ReportLesson handles POST /lessons/{id}/report
func (h *LessonHandler) ReportLesson(w http.ResponseWriter, r *http.Request) {
	var payload reportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.lessons.Report(r.Context(), r.PathValue("id"), payload.ReporterID, payload.Reason); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RecommendedLessons handles GET /recommended-lessons
func (h *LessonHandler) RecommendedLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lessons, err := h.lessons.Recommend(r.Context(), q.Get("category"), q.Get("tone"), q.Get("excludeId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, lessons)
}

// parseAction maps an action verb to apply/revoke. Anything other than the
// two known verbs is rejected.
func parseAction(action, applyVerb, revokeVerb string) (apply bool, ok bool) {
	switch action {
	case applyVerb:
		return true, true
	case revokeVerb:
		return false, true
	default:
		return false, false
	}
}
