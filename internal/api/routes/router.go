package routes

import (
	"net/http"

	"github.com/digitallife/lessonhub/internal/api/handlers"
	"github.com/digitallife/lessonhub/internal/api/middleware"
	"github.com/digitallife/lessonhub/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	lessonHandler   *handlers.LessonHandler
	commentHandler  *handlers.CommentHandler
	userHandler     *handlers.UserHandler
	favoriteHandler *handlers.FavoriteHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	lessonHandler *handlers.LessonHandler,
	commentHandler *handlers.CommentHandler,
	userHandler *handlers.UserHandler,
	favoriteHandler *handlers.FavoriteHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		lessonHandler:   lessonHandler,
		commentHandler:  commentHandler,
		userHandler:     userHandler,
		favoriteHandler: favoriteHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Lesson endpoints
	r.mux.HandleFunc("GET /lessons", r.lessonHandler.ListLessons)
	r.mux.HandleFunc("GET /lessons/{id}", r.lessonHandler.GetLesson)
	r.mux.HandleFunc("POST /lessons/{id}/like", r.lessonHandler.LikeLesson)
	r.mux.HandleFunc("POST /lessons/{id}/save", r.lessonHandler.SaveLesson)
	r.mux.HandleFunc("POST /lessons/{id}/report", r.lessonHandler.ReportLesson)
	r.mux.HandleFunc("GET /recommended-lessons", r.lessonHandler.RecommendedLessons)

	// Comment endpoints
	r.mux.HandleFunc("GET /lessons/{id}/comments", r.commentHandler.ListComments)
	r.mux.HandleFunc("POST /lessons/{id}/comments", r.commentHandler.CreateComment)

	// Favorite endpoints
	r.mux.HandleFunc("POST /favorites", r.favoriteHandler.AddFavorite)

	// User endpoints
	r.mux.HandleFunc("GET /user", r.userHandler.GetUser)
	r.mux.HandleFunc("PUT /users", r.userHandler.UpsertUser)
	r.mux.HandleFunc("GET /user-stats", r.userHandler.UserStats)
	r.mux.HandleFunc("GET /users/admin/{email}", r.userHandler.IsAdmin)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// Identity must wrap the cache so tier-scoped keys see the viewer
	handler = middleware.IdentityMiddleware(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
