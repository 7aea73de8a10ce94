package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/providers"
)

const (
	commentRateLimit   = 10
	commentRateWindow  = time.Hour
	commentDedupWindow = 24 * time.Hour
	commentMaxLength   = 1000
)

// CommentService defines the comment operations used by the handler.
type CommentService interface {
	Comments(ctx context.Context, lessonID string) ([]*entities.Comment, error)
	AddComment(ctx context.Context, lessonID, userID, text string) (*entities.Comment, error)
}

// CommentHandler handles lesson comments. Submissions are rate limited per
// client IP and identical comments are suppressed for a day; both guards
// are Redis-backed with an in-process fallback when the cache is absent.
type CommentHandler struct {
	service CommentService
	cache   providers.CacheProvider
	local   *localRateLimiter
	deduper *localDeduper
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service CommentService, cache providers.CacheProvider) *CommentHandler {
	return &CommentHandler{
		service: service,
		cache:   cache,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

// ListComments handles GET /lessons/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.Comments(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// CreateComment handles POST /lessons/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	lessonID := r.PathValue("id")

	var payload commentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Text = strings.TrimSpace(payload.Text)
	if len(payload.Text) > commentMaxLength {
		respondWithError(w, http.StatusBadRequest, "comment is too long")
		return
	}

	rateKey := "comment:rate:" + clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), rateKey)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "comment:dup:" + commentFingerprint(lessonID, payload)
	if h.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	comment, err := h.service.AddComment(r.Context(), lessonID, payload.UserID, payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// The fingerprint is recorded only once the comment is stored, so a
	// submission that failed can be retried verbatim.
	h.markSubmitted(r.Context(), dupKey)

	respondWithJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, commentRateLimit, commentRateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= commentRateLimit {
		return false, commentRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(commentRateWindow.Seconds()))
	return true, commentRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (h *CommentHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key)
	}

	exists, err := h.cache.Exists(ctx, key)
	return err == nil && exists
}

func (h *CommentHandler) markSubmitted(ctx context.Context, key string) {
	if h.cache == nil {
		h.deduper.mark(key, commentDedupWindow)
		return
	}

	_ = h.cache.Set(ctx, key, []byte("1"), int(commentDedupWindow.Seconds()))
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiresAt, ok := d.entries[key]
	return ok && time.Now().Before(expiresAt)
}

func (d *localDeduper) mark(key string, window time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries[key] = time.Now().Add(window)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func commentFingerprint(lessonID string, payload commentRequest) string {
	normalized := []string{
		lessonID,
		strings.ToLower(strings.TrimSpace(payload.UserID)),
		normalizeComment(payload.Text),
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeComment(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}
