package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// recentLessonsLimit bounds the dashboard's recent authored lessons
const recentLessonsLimit = 5

// UserService handles account provisioning and the per-user dashboard
// aggregation. Accounts are keyed by email and provisioned implicitly on
// first contact.
type UserService struct {
	userRepo     repositories.UserRepository
	lessonRepo   repositories.LessonRepository
	favoriteRepo repositories.FavoriteRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	lessonRepo repositories.LessonRepository,
	favoriteRepo repositories.FavoriteRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		lessonRepo:   lessonRepo,
		favoriteRepo: favoriteRepo,
	}
}

// GetOrCreate fetches the account for email, provisioning a default one on
// first contact. The second return reports whether the account was created
// by this call. An existing account gets its last login refreshed.
func (s *UserService) GetOrCreate(ctx context.Context, email string) (*entities.User, bool, error) {
	if email == "" {
		return nil, false, apperrors.NewValidationError("email is required")
	}

	now := time.Now().UTC()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if touchErr := s.userRepo.TouchLastLogin(ctx, email, now); touchErr == nil {
			user.LastLoginAt = now
		}
		return user, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	user = &entities.User{
		ID:          uuid.New().String(),
		Email:       email,
		Role:        entities.RoleUser,
		IsPremium:   false,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a provisioning race; the row exists now, read it back
		if apperrors.IsConflict(err) {
			existing, getErr := s.userRepo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return user, true, nil
}

// Upsert creates or refreshes the account's profile fields. Role, premium
// flag and created_at are set-once: an existing account only gets name,
// photo URL and last login updated. The return reports whether a new
// account was created.
func (s *UserService) Upsert(ctx context.Context, email, name, photoURL string) (bool, error) {
	if email == "" {
		return false, apperrors.NewValidationError("email is required")
	}

	now := time.Now().UTC()

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return false, s.userRepo.UpdateProfile(ctx, email, name, photoURL, now)
	}
	if !apperrors.IsNotFound(err) {
		return false, err
	}

	user := &entities.User{
		ID:          uuid.New().String(),
		Email:       email,
		Name:        name,
		PhotoURL:    photoURL,
		Role:        entities.RoleUser,
		IsPremium:   false,
		CreatedAt:   now,
		LastLoginAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.IsConflict(err) {
			return false, s.userRepo.UpdateProfile(ctx, email, name, photoURL, now)
		}
		return false, err
	}

	return true, nil
}

// Stats assembles the dashboard aggregation for one user. The three reads
// run concurrently; any failure fails the whole aggregation.
func (s *UserService) Stats(ctx context.Context, email string) (*entities.UserStats, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	stats := &entities.UserStats{RecentLessons: []entities.LessonSummary{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.lessonRepo.CountByCreator(gctx, email)
		if err != nil {
			return err
		}
		stats.TotalLessons = total
		return nil
	})

	g.Go(func() error {
		total, err := s.favoriteRepo.CountByUser(gctx, email)
		if err != nil {
			return err
		}
		stats.TotalFavorites = total
		return nil
	})

	g.Go(func() error {
		recent, err := s.lessonRepo.RecentByCreator(gctx, email, recentLessonsLimit)
		if err != nil {
			return err
		}
		summaries := make([]entities.LessonSummary, 0, len(recent))
		for _, l := range recent {
			summaries = append(summaries, *l)
		}
		stats.RecentLessons = summaries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

// IsAdmin reports whether the account holds the admin role. Unknown
// accounts are simply not admins, never an error.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, apperrors.NewValidationError("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return user.Role == entities.RoleAdmin, nil
}
