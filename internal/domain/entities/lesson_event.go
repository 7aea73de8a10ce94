package entities

import "time"

// Lesson event types published on the event bus.
const (
	EventLessonLiked     = "lesson.liked"
	EventLessonUnliked   = "lesson.unliked"
	EventLessonSaved     = "lesson.saved"
	EventLessonUnsaved   = "lesson.unsaved"
	EventLessonFavorited = "lesson.favorited"
)

// LessonEvent signals an engagement mutation so caches can be invalidated.
type LessonEvent struct {
	Type      string    `json:"type"`
	LessonID  string    `json:"lesson_id"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}
