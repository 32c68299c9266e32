package repo

import (
	"sellerdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportJobRepository handles import job data access
type ImportJobRepository struct {
	db *gorm.DB
}

// NewImportJobRepository creates a new import job repository
func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

// GetByID gets an import job by ID
func (r *ImportJobRepository) GetByID(id uuid.UUID) (*models.ImportJob, error) {
	var job models.ImportJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Create creates a new import job
func (r *ImportJobRepository) Create(job *models.ImportJob) error {
	return r.db.Create(job).Error
}

// Update updates an import job
func (r *ImportJobRepository) Update(job *models.ImportJob) error {
	return r.db.Save(job).Error
}

// ListByUser gets a user's import jobs, newest first
func (r *ImportJobRepository) ListByUser(userID uuid.UUID, limit, offset int) ([]models.ImportJob, int64, error) {
	var jobs []models.ImportJob
	var total int64

	query := r.db.Model(&models.ImportJob{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
