package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) domainRepo.VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	return r.conn(ctx).Create(vendor).Error
}

func (r *vendorRepository) GetByCode(ctx context.Context, code string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.conn(ctx).First(&vendor, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vendor, err
}

func (r *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	return r.conn(ctx).Save(vendor).Error
}

func (r *vendorRepository) List(ctx context.Context, activeOnly bool) ([]entity.Vendor, error) {
	var vendors []entity.Vendor
	query := r.conn(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("code ASC").Find(&vendors).Error
	return vendors, err
}
