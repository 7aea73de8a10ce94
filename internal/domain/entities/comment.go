package entities

import "time"

// Comment is an append-only remark on a lesson. No edit or delete path.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	LessonID  string    `json:"lessonId" db:"lesson_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Report is a write-only abuse report on a lesson.
type Report struct {
	ID         string    `json:"id" db:"id"`
	LessonID   string    `json:"lessonId" db:"lesson_id"`
	ReporterID string    `json:"reporterId" db:"reporter_id"`
	Reason     string    `json:"reason" db:"reason"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
}

// Favorite links a user to a saved lesson. The (userEmail, lessonId) pair
// is unique; creating one also bumps the lesson's save counter.
type Favorite struct {
	ID        string    `json:"id" db:"id"`
	UserEmail string    `json:"userEmail" db:"user_email"`
	LessonID  string    `json:"lessonId" db:"lesson_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
