package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type closingRepository struct {
	db *gorm.DB
}

// NewClosingRepository creates a new closing period repository
func NewClosingRepository(db *gorm.DB) domainRepo.ClosingRepository {
	return &closingRepository{db: db}
}

func (r *closingRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *closingRepository) Create(ctx context.Context, period *entity.ClosingPeriod) error {
	return r.conn(ctx).Create(period).Error
}

func (r *closingRepository) Get(ctx context.Context, period string) (*entity.ClosingPeriod, error) {
	var closing entity.ClosingPeriod
	err := r.conn(ctx).First(&closing, "period = ?", period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closing, err
}

func (r *closingRepository) Update(ctx context.Context, period *entity.ClosingPeriod) error {
	return r.conn(ctx).Save(period).Error
}

func (r *closingRepository) List(ctx context.Context) ([]entity.ClosingPeriod, error) {
	var periods []entity.ClosingPeriod
	err := r.conn(ctx).Order("period DESC").Find(&periods).Error
	return periods, err
}
