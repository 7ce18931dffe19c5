package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type resolutionRepository struct {
	db *gorm.DB
}

// NewResolutionRepository creates a new resolution repository
func NewResolutionRepository(db *gorm.DB) domainRepo.ResolutionRepository {
	return &resolutionRepository{db: db}
}

func (r *resolutionRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *resolutionRepository) Create(ctx context.Context, record *entity.ResolutionRecord) error {
	return r.conn(ctx).Create(record).Error
}

func (r *resolutionRepository) ListByRecord(ctx context.Context, period, number string) ([]entity.ResolutionRecord, error) {
	var records []entity.ResolutionRecord
	err := r.conn(ctx).
		Where("period = ? AND record_number = ?", period, number).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *resolutionRepository) ListByPeriod(ctx context.Context, period string) ([]entity.ResolutionRecord, error) {
	var records []entity.ResolutionRecord
	err := r.conn(ctx).
		Where("period = ?", period).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
