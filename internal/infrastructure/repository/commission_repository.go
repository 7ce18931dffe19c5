package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *commissionRepository) DeleteByPeriod(ctx context.Context, period string) error {
	return r.conn(ctx).
		Where("period = ?", period).
		Delete(&entity.Commission{}).Error
}

func (r *commissionRepository) CreateBatch(ctx context.Context, commissions []entity.Commission) error {
	if len(commissions) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(commissions, 500).Error
}

func (r *commissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	var commission entity.Commission
	err := r.conn(ctx).First(&commission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &commission, err
}

func (r *commissionRepository) Update(ctx context.Context, commission *entity.Commission) error {
	return r.conn(ctx).Save(commission).Error
}

func (r *commissionRepository) ListByPeriod(ctx context.Context, period string) ([]entity.Commission, error) {
	var commissions []entity.Commission
	err := r.conn(ctx).
		Where("period = ?", period).
		Order("vendor ASC").
		Find(&commissions).Error
	return commissions, err
}
