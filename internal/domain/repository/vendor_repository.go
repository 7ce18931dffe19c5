package repository

import (
	"context"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
)

// VendorRepository defines the interface for vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByCode(ctx context.Context, code string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	List(ctx context.Context, activeOnly bool) ([]entity.Vendor, error)
}
