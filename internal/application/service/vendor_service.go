package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
)

// VendorService manages the vendor registry and commission rates
type VendorService struct {
	vendorRepo repository.VendorRepository
	logger     *logrus.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo repository.VendorRepository, logger *logrus.Logger) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// CreateVendorInput represents the input for creating a vendor
type CreateVendorInput struct {
	Code                 string
	Name                 string
	CommissionPercentage decimal.Decimal
}

// CreateVendor registers a new vendor. Reserved system codes are refused.
func (s *VendorService) CreateVendor(ctx context.Context, input *CreateVendorInput) (*entity.Vendor, error) {
	if input.Code == "" || input.Name == "" {
		return nil, apperror.NewBadRequestError("Vendor code and name are required")
	}
	if entity.IsReservedVendorCode(input.Code) {
		return nil, apperror.NewConflictError("Vendor code is reserved")
	}
	if err := validateRate(input.CommissionPercentage); err != nil {
		return nil, err
	}

	existing, err := s.vendorRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Vendor code already registered")
	}

	vendor := &entity.Vendor{
		Code:                 input.Code,
		Name:                 input.Name,
		CommissionPercentage: input.CommissionPercentage,
		Active:               true,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.WithField("vendor", vendor.Code).Info("vendor registered")
	return vendor, nil
}

// UpdateVendorInput represents the input for updating a vendor
type UpdateVendorInput struct {
	Code                 string
	Name                 *string
	CommissionPercentage *decimal.Decimal
	Active               *bool
}

// UpdateVendor changes a vendor's name, rate or active flag. Rate changes take
// effect on the next commission recalculation, including for past periods.
func (s *VendorService) UpdateVendor(ctx context.Context, input *UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	if input.Name != nil && *input.Name != "" {
		vendor.Name = *input.Name
	}
	if input.CommissionPercentage != nil {
		if err := validateRate(*input.CommissionPercentage); err != nil {
			return nil, err
		}
		vendor.CommissionPercentage = *input.CommissionPercentage
	}
	if input.Active != nil {
		vendor.Active = *input.Active
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetVendor retrieves one vendor by code
func (s *VendorService) GetVendor(ctx context.Context, code string) (*entity.Vendor, error) {
	vendor, err := s.vendorRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}
	return vendor, nil
}

// ListVendors lists vendors, optionally restricted to active ones
func (s *VendorService) ListVendors(ctx context.Context, activeOnly bool) ([]entity.Vendor, error) {
	return s.vendorRepo.List(ctx, activeOnly)
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewBadRequestError("Commission percentage must be between 0 and 100")
	}
	return nil
}
