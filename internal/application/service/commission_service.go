package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// CommissionService computes per-vendor commissions from ledger totals.
// Recalculation is a full replace: the period's records are deleted and
// regenerated so the set always reflects the current ledger snapshot.
type CommissionService struct {
	commissionRepo repository.CommissionRepository
	vendorRepo     repository.VendorRepository
	ledgerRepo     repository.LedgerRepository
	txManager      repository.TxManager
	logger         *logrus.Logger
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	commissionRepo repository.CommissionRepository,
	vendorRepo repository.VendorRepository,
	ledgerRepo repository.LedgerRepository,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		vendorRepo:     vendorRepo,
		ledgerRepo:     ledgerRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Recalculate regenerates a period's commissions from the ledger. The
// percentage applied is each vendor's current configured rate, not a
// historical snapshot, so recalculating a past period follows rate changes.
func (s *CommissionService) Recalculate(ctx context.Context, period string) ([]entity.Commission, error) {
	if !utils.IsValidPeriod(period) {
		return nil, apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}

	summaries, err := s.ledgerRepo.VendorSummaries(ctx, period)
	if err != nil {
		return nil, err
	}

	vendors, err := s.vendorRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(vendors))
	for _, v := range vendors {
		rates[v.Code] = v.CommissionPercentage
	}

	commissions := make([]entity.Commission, 0, len(summaries))
	for _, summary := range summaries {
		if entity.IsReservedVendorCode(summary.Vendor) {
			continue
		}
		rate, ok := rates[summary.Vendor]
		if !ok {
			s.logger.WithField("vendor", summary.Vendor).Warn("ledger vendor without registration, skipping commission")
			continue
		}

		base := summary.Gross.Sub(summary.Returns)
		commissions = append(commissions, entity.Commission{
			Vendor:     summary.Vendor,
			Period:     period,
			GrossSales: summary.Gross,
			Returns:    summary.Returns,
			Base:       base,
			Percentage: rate,
			Value:      base.Mul(rate).Div(decimal.NewFromInt(100)).Round(2),
			Status:     enum.CommissionStatusPrevista,
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.commissionRepo.DeleteByPeriod(ctx, period); err != nil {
			return err
		}
		if len(commissions) == 0 {
			return nil
		}
		return s.commissionRepo.CreateBatch(ctx, commissions)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"period":  period,
		"vendors": len(commissions),
	}).Info("commissions recalculated")

	return commissions, nil
}

// ListByPeriod returns the period's current commission set
func (s *CommissionService) ListByPeriod(ctx context.Context, period string) ([]entity.Commission, error) {
	if !utils.IsValidPeriod(period) {
		return nil, apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}
	return s.commissionRepo.ListByPeriod(ctx, period)
}

// MarkPaid flips a commission from PREVISTA to PAGA
func (s *CommissionService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	commission, err := s.commissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, apperror.NewNotFoundError("Commission")
	}
	if commission.Status == enum.CommissionStatusPaga {
		return nil, apperror.NewConflictError("Commission is already paid")
	}

	commission.Status = enum.CommissionStatusPaga
	if err := s.commissionRepo.Update(ctx, commission); err != nil {
		return nil, err
	}
	return commission, nil
}
