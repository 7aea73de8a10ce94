package entities

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account keyed by email. Accounts are provisioned
// implicitly on first contact and never deleted.
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	PhotoURL    string    `json:"photoURL" db:"photo_url"`
	Role        string    `json:"role" db:"role"`
	IsPremium   bool      `json:"isPremium" db:"is_premium"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	LastLoginAt time.Time `json:"lastLoginAt" db:"last_login_at"`
}

// UserStats is the per-user dashboard aggregation.
type UserStats struct {
	TotalLessons   int             `json:"totalLessons"`
	TotalFavorites int             `json:"totalFavorites"`
	RecentLessons  []LessonSummary `json:"recentLessons"`
}
