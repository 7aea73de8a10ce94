package entities

import (
	"time"
)

// Lesson visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Lesson access levels
const (
	AccessFree    = "free"
	AccessPremium = "premium"
)

// Lesson represents a short educational lesson item.
//
// Likes and SaveCount mirror the cardinality of LikesArray and SavesArray;
// the pair is always updated in a single statement so the counter cannot
// drift from the set within one mutation.
type Lesson struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	ShortDescription string    `json:"shortDescription" db:"short_description"`
	Category         string    `json:"category" db:"category"`
	EmotionalTone    string    `json:"emotionalTone" db:"emotional_tone"`
	Visibility       string    `json:"visibility" db:"visibility"`
	AccessLevel      string    `json:"accessLevel" db:"access_level"`
	CreatorEmail     string    `json:"creatorEmail" db:"creator_email"`
	Likes            int       `json:"likes" db:"likes"`
	SaveCount        int       `json:"saveCount" db:"save_count"`
	Views            int       `json:"views" db:"views"`
	LikesArray       []string  `json:"likesArray" db:"likes_array"`
	SavesArray       []string  `json:"savesArray" db:"saves_array"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// LessonSummary is the bounded projection returned by the dashboard
// aggregation (recent authored lessons).
type LessonSummary struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Category  string    `json:"category" db:"category"`
	Likes     int       `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
