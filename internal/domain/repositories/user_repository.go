package repositories

import (
	"context"
	"time"

	"github.com/digitallife/lessonhub/internal/domain/entities"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create inserts a new user record
	Create(ctx context.Context, user *entities.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// TouchLastLogin refreshes last_login_at only
	TouchLastLogin(ctx context.Context, email string, at time.Time) error

	// UpdateProfile updates name, photo URL and last_login_at. Role,
	// premium flag and created_at are set-once and never touched here.
	UpdateProfile(ctx context.Context, email, name, photoURL string, at time.Time) error
}

// FavoriteRepository defines the interface for favorite records
type FavoriteRepository interface {
	// Create inserts a favorite; a duplicate (userEmail, lessonId) pair
	// yields a conflict error
	Create(ctx context.Context, favorite *entities.Favorite) error

	// CountByUser counts favorites created by the given email
	CountByUser(ctx context.Context, userEmail string) (int, error)
}

// CommentRepository defines the interface for lesson comments
type CommentRepository interface {
	// Create appends a comment
	Create(ctx context.Context, comment *entities.Comment) error

	// ListByLesson returns a lesson's comments, newest first
	ListByLesson(ctx context.Context, lessonID string) ([]*entities.Comment, error)
}

// ReportRepository defines the interface for abuse reports (write-only)
type ReportRepository interface {
	// Create appends a report
	Create(ctx context.Context, report *entities.Report) error
}
