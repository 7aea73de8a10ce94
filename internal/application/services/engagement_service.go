package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/providers"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// EngagementService handles the like/save toggles and favorites. All
// mutations go through the repository's single-statement toggle, so the
// counters always track the membership sets.
type EngagementService struct {
	lessonRepo   repositories.LessonRepository
	favoriteRepo repositories.FavoriteRepository
	eventBus     providers.EventBus
}

// NewEngagementService creates a new engagement service. eventBus may be
// nil when the instance runs without Redis; mutations then simply publish
// nothing.
func NewEngagementService(
	lessonRepo repositories.LessonRepository,
	favoriteRepo repositories.FavoriteRepository,
	eventBus providers.EventBus,
) *EngagementService {
	return &EngagementService{
		lessonRepo:   lessonRepo,
		favoriteRepo: favoriteRepo,
		eventBus:     eventBus,
	}
}

// Toggle applies or revokes one actor's engagement on a lesson and returns
// the counter value afterwards. Repeating the same action is a no-op that
// still succeeds; the identity check happens before any storage access.
func (s *EngagementService) Toggle(ctx context.Context, lessonID, actorID string, kind repositories.EngagementKind, apply bool) (repositories.EngagementResult, error) {
	if actorID == "" {
		return repositories.EngagementResult{}, apperrors.NewValidationError("user id is required")
	}

	result, err := s.lessonRepo.Toggle(ctx, lessonID, actorID, kind, apply)
	if err != nil {
		return repositories.EngagementResult{}, err
	}

	if result.Changed {
		s.publish(ctx, eventTypeFor(kind, apply), lessonID, actorID)
	}

	return result, nil
}

// AddFavorite records a favorite for the user and saves the lesson on
// their behalf. The favorite insert is the explicit duplicate guard: a
// repeated (userEmail, lessonId) pair is rejected with a conflict and the
// save counter is never touched again, so it cannot double-increment.
func (s *EngagementService) AddFavorite(ctx context.Context, userEmail, lessonID string) error {
	if userEmail == "" {
		return apperrors.NewValidationError("user email is required")
	}
	if lessonID == "" {
		return apperrors.NewValidationError("lesson id is required")
	}

	err := s.favoriteRepo.Create(ctx, &entities.Favorite{
		ID:        uuid.New().String(),
		UserEmail: userEmail,
		LessonID:  lessonID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if _, err := s.lessonRepo.Toggle(ctx, lessonID, userEmail, repositories.EngagementSave, true); err != nil {
		return err
	}

	s.publish(ctx, entities.EventLessonFavorited, lessonID, userEmail)
	return nil
}

// publish emits an engagement event. Failures are logged, never surfaced;
// cache invalidation is best effort.
func (s *EngagementService) publish(ctx context.Context, eventType, lessonID, actorID string) {
	if s.eventBus == nil {
		return
	}

	event := &entities.LessonEvent{
		Type:      eventType,
		LessonID:  lessonID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelLessonUpdates, event); err != nil {
		log.Printf("Warning: Failed to publish %s event for lesson %s: %v", eventType, lessonID, err)
	}
}

func eventTypeFor(kind repositories.EngagementKind, apply bool) string {
	if kind == repositories.EngagementLike {
		if apply {
			return entities.EventLessonLiked
		}
		return entities.EventLessonUnliked
	}
	if apply {
		return entities.EventLessonSaved
	}
	return entities.EventLessonUnsaved
}
