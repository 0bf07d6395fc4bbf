package services

import (
	"context"
	"time"

	"astro-report-service/internal/models"
)

// ReportStore is the persistence surface the pipeline needs. The MongoDB
// store implements it; tests substitute fakes.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	FindDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Report, error)
	Claim(ctx context.Context, id string, now time.Time) (*models.Report, error)
	MarkCompleted(ctx context.Context, id string, result *models.ReportResult, files *models.ReportFiles, processingTime time.Duration) error
	MarkFailed(ctx context.Context, id string, reportErr models.ReportError) error
}

// ArtifactUploader stores a generated artifact and returns its public URL
type ArtifactUploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
