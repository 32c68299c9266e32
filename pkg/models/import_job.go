package models

import (
	"time"

	"github.com/google/uuid"
)

type ImportJobStatus string

const (
	ImportJobStatusPending    ImportJobStatus = "pending"
	ImportJobStatusProcessing ImportJobStatus = "processing"
	ImportJobStatusCompleted  ImportJobStatus = "completed"
	ImportJobStatusFailed     ImportJobStatus = "failed"
)

type ImportJobType string

const (
	ImportJobTypeProducts ImportJobType = "products"
)

// ImportJob represents an async spreadsheet import
type ImportJob struct {
	BaseModel
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"user_id"`
	Type             ImportJobType   `gorm:"not null" json:"type"`
	Status           ImportJobStatus `gorm:"not null;default:'pending'" json:"status"`
	FileName         string          `gorm:"not null" json:"file_name"`
	TotalRecords     int             `gorm:"default:0" json:"total_records"`
	ProcessedRecords int             `gorm:"default:0" json:"processed_records"`
	SuccessRecords   int             `gorm:"default:0" json:"success_records"`
	ErrorRecords     int             `gorm:"default:0" json:"error_records"`
	ErrorDetails     *string         `gorm:"type:jsonb" json:"error_details,omitempty"`
	StartedAt        *time.Time      `json:"started_at"`
	CompletedAt      *time.Time      `json:"completed_at"`
}

// ImportJobProgress is the progress snapshot pushed to pollers and websockets
type ImportJobProgress struct {
	JobID            uuid.UUID       `json:"job_id"`
	Status           ImportJobStatus `json:"status"`
	TotalRecords     int             `json:"total_records"`
	ProcessedRecords int             `json:"processed_records"`
	SuccessRecords   int             `json:"success_records"`
	ErrorRecords     int             `json:"error_records"`
	Progress         float64         `json:"progress"` // 0-100
}

// CalculateProgress returns completion as a percentage
func (job *ImportJob) CalculateProgress() float64 {
	if job.TotalRecords == 0 {
		return 0
	}
	return float64(job.ProcessedRecords) / float64(job.TotalRecords) * 100
}

// ToProgress converts the job row into a progress snapshot
func (job *ImportJob) ToProgress() ImportJobProgress {
	return ImportJobProgress{
		JobID:            job.ID,
		Status:           job.Status,
		TotalRecords:     job.TotalRecords,
		ProcessedRecords: job.ProcessedRecords,
		SuccessRecords:   job.SuccessRecords,
		ErrorRecords:     job.ErrorRecords,
		Progress:         job.CalculateProgress(),
	}
}
