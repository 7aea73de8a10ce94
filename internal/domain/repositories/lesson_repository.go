package repositories

import (
	"context"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
)

// EngagementKind selects which membership-set/counter pair a toggle touches
type EngagementKind int

const (
	// EngagementLike toggles likesArray/likes
	EngagementLike EngagementKind = iota

	// EngagementSave toggles savesArray/saveCount
	EngagementSave
)

// EngagementResult reports the outcome of a toggle. Count is the counter
// value after the operation; Changed is false when the toggle was a no-op
// (actor already in / already out of the membership set).
type EngagementResult struct {
	Count   int
	Changed bool
}

// LessonRepository defines the interface for lesson data operations
type LessonRepository interface {
	// Create inserts a new lesson (authoring collaborator, seeder)
	Create(ctx context.Context, lesson *entities.Lesson) error

	// List returns one page of lessons matching the compiled query
	List(ctx context.Context, query queries.LessonQuery) ([]*entities.Lesson, error)

	// Count returns the total matching the same compiled query
	Count(ctx context.Context, query queries.LessonQuery) (int64, error)

	// GetAndCountView fetches a lesson by id and increments its view
	// counter in the same statement. Every fetch counts.
	GetAndCountView(ctx context.Context, id string) (*entities.Lesson, error)

	// GetByID fetches a lesson without the view side effect
	GetByID(ctx context.Context, id string) (*entities.Lesson, error)

	// Recommend returns related lessons for the fixed-shape query
	Recommend(ctx context.Context, query queries.RecommendationQuery) ([]*entities.Lesson, error)

	// Toggle applies or revokes an engagement for one actor. The membership
	// set and its counter change in the same statement, so the counter
	// always tracks the set's cardinality.
	Toggle(ctx context.Context, lessonID, actorID string, kind EngagementKind, apply bool) (EngagementResult, error)

	// CountByCreator counts lessons authored by the given email, any visibility
	CountByCreator(ctx context.Context, creatorEmail string) (int, error)

	// RecentByCreator returns the newest authored lessons as a bounded projection
	RecentByCreator(ctx context.Context, creatorEmail string, limit int) ([]*entities.LessonSummary, error)
}
