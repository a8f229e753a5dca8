package repository

import (
	"context"

	"notewall/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	Create(ctx context.Context, reporterID uint, target models.Target, reason string) (*models.Report, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, reporterID uint, target models.Target, reason string) (*models.Report, error) {
	if err := targetExists(ctx, r.db, target); err != nil {
		return nil, err
	}

	report := models.Report{
		NoteID:         target.NoteID(),
		CommentID:      target.CommentID(),
		ReporterUserID: reporterID,
		Reason:         reason,
		Status:         models.ReportStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &report, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Report, error) {
	q := r.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reports []models.Report
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reports, nil
}
