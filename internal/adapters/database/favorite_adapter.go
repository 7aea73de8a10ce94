package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	"github.com/digitallife/lessonhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// FavoriteAdapter implements FavoriteRepository on Postgres
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a favorite. The (user_email, lesson_id) unique constraint
// is the duplicate guard; a second insert for the same pair conflicts. A
// lesson id that matches no row is reported as not found, not as a failure.
func (a *FavoriteAdapter) Create(ctx context.Context, favorite *entities.Favorite) error {
	if _, err := uuid.Parse(favorite.LessonID); err != nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", favorite.LessonID))
	}

	record := goqu.Record{
		"id":         favorite.ID,
		"user_email": favorite.UserEmail,
		"lesson_id":  favorite.LessonID,
		"created_at": favorite.CreatedAt,
	}

	query, args, err := a.db.Insert("favorites").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build favorite insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(
				fmt.Sprintf("favorite already exists for %s on lesson %s", favorite.UserEmail, favorite.LessonID))
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", favorite.LessonID))
		}
		return apperrors.NewInternalError("failed to create favorite", err)
	}

	return nil
}

// CountByUser counts favorites created by the given email
func (a *FavoriteAdapter) CountByUser(ctx context.Context, userEmail string) (int, error) {
	query, args, err := a.db.From("favorites").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"user_email": userEmail}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build favorite count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count favorites", err)
	}

	return total, nil
}
