package reports

import (
	"context"
	"fmt"

	"github.com/easybody/easybody-backend/pkg/db/models"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles report persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to report operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new report row.
func (r *Repository) Create(ctx context.Context, report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// FindByID loads a report.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Update saves the provided report.
func (r *Repository) Update(ctx context.Context, report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	return r.db.WithContext(ctx).Save(report).Error
}

// ListByStatus pages reports in one review state, oldest first so the
// queue drains in arrival order.
func (r *Repository) ListByStatus(ctx context.Context, status enums.ReportStatus, params pagination.Params) ([]models.Report, int64, error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Report{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	if err := query.
		Order("created_at ASC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
