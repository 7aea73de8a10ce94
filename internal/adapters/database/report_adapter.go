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

// ReportAdapter implements report persistence in Postgres. Reports are
// write-only from the service's perspective; review happens elsewhere.
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReportAdapter creates a new report adapter
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a report. An unknown lesson id is reported as not found.
func (a *ReportAdapter) Create(ctx context.Context, report *entities.Report) error {
	if _, err := uuid.Parse(report.LessonID); err != nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", report.LessonID))
	}

	record := goqu.Record{
		"id":          report.ID,
		"lesson_id":   report.LessonID,
		"reporter_id": report.ReporterID,
		"reason":      report.Reason,
		"created_at":  report.Timestamp,
	}

	query, args, err := a.db.Insert("reports").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("lesson with id %s not found", report.LessonID))
		}
		return apperrors.NewInternalError("failed to create report", err)
	}

	return nil
}
