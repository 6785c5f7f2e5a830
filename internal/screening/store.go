package screening

import (
	"context"

	"github.com/aiabusehotline/hotline-core/internal/models"
	"gorm.io/gorm"
)

// ScreeningUpdate is the set of fields one screening outcome writes
// back. Nil pointer fields leave the stored column untouched, which is
// how a failed screening changes nothing but the spam status.
type ScreeningUpdate struct {
	SpamStatus     models.SpamStatus
	SignalLabel    *models.SignalLabel
	SeverityBucket *models.SeverityBucket
	FilterModel    *string
}

// Store is the slice of report persistence the worker needs.
type Store interface {
	// ListUnscreened returns up to limit reports still awaiting
	// screening, oldest first.
	ListUnscreened(ctx context.Context, limit int) ([]models.Report, error)
	// ApplyScreening writes a screening outcome to one report.
	ApplyScreening(ctx context.Context, reportID string, update ScreeningUpdate) error
}

// GormStore implements Store on the shared reports database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListUnscreened(ctx context.Context, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Scopes(models.WithSpamStatus(models.SpamUnscreened)).
		Order("received_at ASC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (s *GormStore) ApplyScreening(ctx context.Context, reportID string, update ScreeningUpdate) error {
	fields := map[string]interface{}{"spam_status": update.SpamStatus}
	if update.SignalLabel != nil {
		fields["signal_label"] = *update.SignalLabel
	}
	if update.SeverityBucket != nil {
		// Guards rows written by other processes since the batch read.
		fields["severity_bucket"] = gorm.Expr("COALESCE(severity_bucket, ?)", *update.SeverityBucket)
	}
	if update.FilterModel != nil {
		fields["spam_filter_model"] = *update.FilterModel
	}
	return s.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(fields).Error
}
