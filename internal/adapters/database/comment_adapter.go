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

// CommentAdapter implements comment persistence in Postgres
type CommentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommentAdapter creates a new comment adapter
func NewCommentAdapter(client *postgres.Client) repositories.CommentRepository {
	return &CommentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a comment. An unknown lesson id is reported as not found.
func (a *CommentAdapter) Create(ctx context.Context, comment *entities.Comment) error {
	if _, err := uuid.Parse(comment.LessonID); err != nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", comment.LessonID))
	}

	record := goqu.Record{
		"id":         comment.ID,
		"lesson_id":  comment.LessonID,
		"user_id":    comment.UserID,
		"text":       comment.Text,
		"created_at": comment.CreatedAt,
	}

	query, args, err := a.db.Insert("comments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build comment insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", comment.LessonID))
		}
		return apperrors.NewInternalError("failed to create comment", err)
	}

	return nil
}

// ListByLesson returns a lesson's comments, newest first
func (a *CommentAdapter) ListByLesson(ctx context.Context, lessonID string) ([]*entities.Comment, error) {
	query, args, err := a.db.From("comments").
		Select("id", "lesson_id", "user_id", "text", "created_at").
		Where(goqu.Ex{"lesson_id": lessonID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build comment list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list comments", err)
	}
	defer rows.Close()

	comments := []*entities.Comment{}
	for rows.Next() {
		c := &entities.Comment{}
		if err := rows.Scan(&c.ID, &c.LessonID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan comment row", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate comment rows", err)
	}

	return comments, nil
}
