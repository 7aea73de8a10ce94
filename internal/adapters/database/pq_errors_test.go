package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("exec: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("exec: %w", &pq.Error{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("connection refused")))
	assert.False(t, isForeignKeyViolation(nil))
}

// A malformed lesson id never reaches the database; the adapters report it
// as not found before building a statement.
func TestCreate_MalformedLessonIDIsNotFound(t *testing.T) {
	ctx := context.Background()

	err := (&FavoriteAdapter{}).Create(ctx, &entities.Favorite{
		UserEmail: "u@example.com",
		LessonID:  "not-a-uuid",
	})
	assert.True(t, apperrors.IsNotFound(err))

	err = (&CommentAdapter{}).Create(ctx, &entities.Comment{
		LessonID: "not-a-uuid",
		UserID:   "u@example.com",
		Text:     "hello",
	})
	assert.True(t, apperrors.IsNotFound(err))

	err = (&ReportAdapter{}).Create(ctx, &entities.Report{
		LessonID:   "not-a-uuid",
		ReporterID: "u@example.com",
		Reason:     "spam",
	})
	assert.True(t, apperrors.IsNotFound(err))
}
