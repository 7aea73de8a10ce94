package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	"github.com/digitallife/lessonhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

var lessonColumns = []interface{}{
	"id", "title", "short_description", "category", "emotional_tone",
	"visibility", "access_level", "creator_email",
	"likes", "save_count", "views", "likes_array", "saves_array", "created_at",
}

// LessonAdapter implements LessonRepository on Postgres
type LessonAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLessonAdapter creates a new lesson adapter
func NewLessonAdapter(client *postgres.Client) repositories.LessonRepository {
	return &LessonAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new lesson
func (a *LessonAdapter) Create(ctx context.Context, lesson *entities.Lesson) error {
	record := goqu.Record{
		"id":                lesson.ID,
		"title":             lesson.Title,
		"short_description": lesson.ShortDescription,
		"category":          lesson.Category,
		"emotional_tone":    lesson.EmotionalTone,
		"visibility":        lesson.Visibility,
		"access_level":      lesson.AccessLevel,
		"creator_email":     lesson.CreatorEmail,
		"likes":             lesson.Likes,
		"save_count":        lesson.SaveCount,
		"views":             lesson.Views,
		"likes_array":       pq.Array(lesson.LikesArray),
		"saves_array":       pq.Array(lesson.SavesArray),
		"created_at":        lesson.CreatedAt,
	}

	query, args, err := a.db.Insert("lessons").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lesson insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create lesson", err)
	}

	return nil
}

// List returns one page of lessons matching the compiled query
func (a *LessonAdapter) List(ctx context.Context, q queries.LessonQuery) ([]*entities.Lesson, error) {
	ds := a.db.From("lessons").
		Select(lessonColumns...).
		Where(predicateOf(q)...).
		Order(orderOf(q.Sort)).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset()))

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lesson list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list lessons", err)
	}
	defer rows.Close()

	lessons := []*entities.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lesson row", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate lesson rows", err)
	}

	return lessons, nil
}

// Count returns the total matching the same compiled query
func (a *LessonAdapter) Count(ctx context.Context, q queries.LessonQuery) (int64, error) {
	query, args, err := a.db.From("lessons").
		Select(goqu.COUNT("*")).
		Where(predicateOf(q)...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build lesson count query", err)
	}

	var total int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count lessons", err)
	}

	return total, nil
}

// GetAndCountView fetches a lesson by id, incrementing its view counter in
// the same statement. Every fetch counts, repeat fetches included.
func (a *LessonAdapter) GetAndCountView(ctx context.Context, id string) (*entities.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}

	query := `
		UPDATE lessons SET views = views + 1
		WHERE id = $1
		RETURNING id, title, short_description, category, emotional_tone,
			visibility, access_level, creator_email,
			likes, save_count, views, likes_array, saves_array, created_at
	`

	lesson, err := scanLesson(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lesson", err)
	}

	return lesson, nil
}

// GetByID fetches a lesson without touching the view counter
func (a *LessonAdapter) GetByID(ctx context.Context, id string) (*entities.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}

	query, args, err := a.db.From("lessons").
		Select(lessonColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lesson get query", err)
	}

	lesson, err := scanLesson(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get lesson", err)
	}

	return lesson, nil
}

// Recommend returns related lessons for the fixed-shape query
func (a *LessonAdapter) Recommend(ctx context.Context, q queries.RecommendationQuery) ([]*entities.Lesson, error) {
	exprs := []goqu.Expression{goqu.C("visibility").Eq(entities.VisibilityPublic)}
	if q.Category.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("category").Eq(q.Category.Value))
	}
	if q.Tone.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("emotional_tone").Eq(q.Tone.Value))
	}
	if q.ExcludeID != "" {
		if _, err := uuid.Parse(q.ExcludeID); err == nil {
			exprs = append(exprs, goqu.C("id").Neq(q.ExcludeID))
		}
	}

	query, args, err := a.db.From("lessons").
		Select(lessonColumns...).
		Where(exprs...).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(q.Limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recommendation query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query recommendations", err)
	}
	defer rows.Close()

	lessons := []*entities.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lesson row", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate lesson rows", err)
	}

	return lessons, nil
}

// Toggle applies or revokes one actor's engagement. The membership set and
// its counter change in a single conditional UPDATE, so a repeated apply is
// a no-op and the counter always equals the set's cardinality.
func (a *LessonAdapter) Toggle(ctx context.Context, lessonID, actorID string, kind repositories.EngagementKind, apply bool) (repositories.EngagementResult, error) {
	var result repositories.EngagementResult

	if _, err := uuid.Parse(lessonID); err != nil {
		return result, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", lessonID))
	}

	arrayCol, countCol := engagementColumns(kind)

	var query string
	if apply {
		query = fmt.Sprintf(`
			UPDATE lessons
			SET %[1]s = array_append(%[1]s, $2), %[2]s = %[2]s + 1
			WHERE id = $1 AND NOT ($2 = ANY(%[1]s))
			RETURNING %[2]s
		`, arrayCol, countCol)
	} else {
		query = fmt.Sprintf(`
			UPDATE lessons
			SET %[1]s = array_remove(%[1]s, $2), %[2]s = %[2]s - 1
			WHERE id = $1 AND $2 = ANY(%[1]s)
			RETURNING %[2]s
		`, arrayCol, countCol)
	}

	err := a.client.DB().QueryRowContext(ctx, query, lessonID, actorID).Scan(&result.Count)
	if err == nil {
		result.Changed = true
		return result, nil
	}
	if err != sql.ErrNoRows {
		return result, apperrors.NewInternalError("failed to toggle engagement", err)
	}

	// No row changed: either the toggle was a no-op or the lesson is gone.
	// Re-read the counter to tell the two apart.
	current := fmt.Sprintf("SELECT %s FROM lessons WHERE id = $1", countCol)
	err = a.client.DB().QueryRowContext(ctx, current, lessonID).Scan(&result.Count)
	if err == sql.ErrNoRows {
		return result, apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", lessonID))
	}
	if err != nil {
		return result, apperrors.NewInternalError("failed to read engagement count", err)
	}

	return result, nil
}

// CountByCreator counts lessons authored by the given email, any visibility
func (a *LessonAdapter) CountByCreator(ctx context.Context, creatorEmail string) (int, error) {
	query, args, err := a.db.From("lessons").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"creator_email": creatorEmail}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build creator count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count lessons by creator", err)
	}

	return total, nil
}

// RecentByCreator returns the newest authored lessons as a bounded projection
func (a *LessonAdapter) RecentByCreator(ctx context.Context, creatorEmail string, limit int) ([]*entities.LessonSummary, error) {
	query, args, err := a.db.From("lessons").
		Select("id", "title", "category", "likes", "created_at").
		Where(goqu.Ex{"creator_email": creatorEmail}).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build recent lessons query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list recent lessons", err)
	}
	defer rows.Close()

	summaries := []*entities.LessonSummary{}
	for rows.Next() {
		s := &entities.LessonSummary{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Category, &s.Likes, &s.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan lesson summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate lesson summaries", err)
	}

	return summaries, nil
}

// predicateOf translates the compiled query into goqu expressions. Count and
// List both go through here so the page and the total always agree.
func predicateOf(q queries.LessonQuery) []goqu.Expression {
	exprs := []goqu.Expression{}

	if q.Visibility.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("visibility").Eq(q.Visibility.Value))
	}
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		exprs = append(exprs, goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("short_description").ILike(pattern),
		))
	}
	if q.Category.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("category").Eq(q.Category.Value))
	}
	if q.Tone.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("emotional_tone").Eq(q.Tone.Value))
	}
	if q.AccessLevel.Kind == queries.MatchEquals {
		exprs = append(exprs, goqu.C("access_level").Eq(q.AccessLevel.Value))
	}

	return exprs
}

func orderOf(sort queries.SortKey) exp.OrderedExpression {
	switch sort {
	case queries.SortMostSaved:
		return goqu.C("save_count").Desc()
	case queries.SortMostLiked:
		return goqu.C("likes").Desc()
	default:
		return goqu.C("created_at").Desc()
	}
}

func engagementColumns(kind repositories.EngagementKind) (arrayCol, countCol string) {
	if kind == repositories.EngagementSave {
		return "saves_array", "save_count"
	}
	return "likes_array", "likes"
}

// escapeLike escapes ILIKE wildcards in user-supplied search text
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(row rowScanner) (*entities.Lesson, error) {
	l := &entities.Lesson{}
	err := row.Scan(
		&l.ID,
		&l.Title,
		&l.ShortDescription,
		&l.Category,
		&l.EmotionalTone,
		&l.Visibility,
		&l.AccessLevel,
		&l.CreatorEmail,
		&l.Likes,
		&l.SaveCount,
		&l.Views,
		pq.Array(&l.LikesArray),
		pq.Array(&l.SavesArray),
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}
