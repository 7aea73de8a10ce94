package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// LessonPage is one page of listing results together with its pagination
// metadata. Total and TotalPages are derived from the same compiled query
// as the page contents.
type LessonPage struct {
	Lessons    []*entities.Lesson `json:"lessons"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// LessonService handles business logic for lessons, their comments and
// abuse reports.
type LessonService struct {
	repo        repositories.LessonRepository
	commentRepo repositories.CommentRepository
	reportRepo  repositories.ReportRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(
	repo repositories.LessonRepository,
	commentRepo repositories.CommentRepository,
	reportRepo repositories.ReportRepository,
) *LessonService {
	return &LessonService{
		repo:        repo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
	}
}

// List compiles the raw listing parameters for the viewer and returns one
// page of matching lessons. Count and page contents come from the same
// compiled query, so the pagination metadata always agrees with the rows.
func (s *LessonService) List(ctx context.Context, params queries.ListParams, viewer entities.Viewer) (*LessonPage, error) {
	query := queries.Compile(params, viewer)

	lessons, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	return &LessonPage{
		Lessons:    lessons,
		Total:      total,
		Page:       query.Page,
		TotalPages: queries.TotalPages(total, query.Limit),
	}, nil
}

// Get fetches a single lesson and counts the view in the same statement.
// Every fetch counts; there is no dedup window.
func (s *LessonService) Get(ctx context.Context, id string) (*entities.Lesson, error) {
	return s.repo.GetAndCountView(ctx, id)
}

// Create inserts a new lesson, filling in identity and timestamps
func (s *LessonService) Create(ctx context.Context, lesson *entities.Lesson) error {
	if strings.TrimSpace(lesson.Title) == "" {
		return apperrors.NewValidationError("lesson title is required")
	}
	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	if lesson.Visibility == "" {
		lesson.Visibility = entities.VisibilityPublic
	}
	if lesson.AccessLevel == "" {
		lesson.AccessLevel = entities.AccessFree
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, lesson)
}

// Recommend returns up to six public lessons matching the given category
// and tone, excluding the lesson the caller is already reading. The "all"
// sentinel and empty values mean no filter on that field.
func (s *LessonService) Recommend(ctx context.Context, category, tone, excludeID string) ([]*entities.Lesson, error) {
	return s.repo.Recommend(ctx, queries.Recommendation(category, tone, excludeID))
}

// Comments returns a lesson's comments, newest first
func (s *LessonService) Comments(ctx context.Context, lessonID string) ([]*entities.Comment, error) {
	return s.commentRepo.ListByLesson(ctx, lessonID)
}

// AddComment appends a comment to a lesson
func (s *LessonService) AddComment(ctx context.Context, lessonID, userID, text string) (*entities.Comment, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text is required")
	}

	comment := &entities.Comment{
		ID:        uuid.New().String(),
		LessonID:  lessonID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Report files an abuse report against a lesson
func (s *LessonService) Report(ctx context.Context, lessonID, reporterID, reason string) error {
	if reporterID == "" {
		return apperrors.NewValidationError("reporter id is required")
	}
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("report reason is required")
	}

	return s.reportRepo.Create(ctx, &entities.Report{
		ID:         uuid.New().String(),
		LessonID:   lessonID,
		ReporterID: reporterID,
		Reason:     reason,
		Timestamp:  time.Now().UTC(),
	})
}
