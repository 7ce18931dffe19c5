package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// ClosingService orchestrates the monthly closing: report import, divergence
// analysis, ledger ingestion, commission recalculation and the one-way lock.
type ClosingService struct {
	closingRepo repository.ClosingRepository
	fiscalRepo  repository.FiscalRecordRepository
	ledger      *LedgerService
	commissions *CommissionService
	txManager   repository.TxManager
	logger      *logrus.Logger
}

// NewClosingService creates a new closing service
func NewClosingService(
	closingRepo repository.ClosingRepository,
	fiscalRepo repository.FiscalRecordRepository,
	ledger *LedgerService,
	commissions *CommissionService,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *ClosingService {
	return &ClosingService{
		closingRepo: closingRepo,
		fiscalRepo:  fiscalRepo,
		ledger:      ledger,
		commissions: commissions,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreatePeriod opens a new closing period
func (s *ClosingService) CreatePeriod(ctx context.Context, period string) (*entity.ClosingPeriod, error) {
	if !utils.IsValidPeriod(period) {
		return nil, apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}

	existing, err := s.closingRepo.Get(ctx, period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Period already exists")
	}

	closing := &entity.ClosingPeriod{
		Period:       period,
		Status:       enum.PeriodStatusAberto,
		TotalSales:   decimal.Zero,
		TotalReturns: decimal.Zero,
	}
	if err := s.closingRepo.Create(ctx, closing); err != nil {
		return nil, err
	}
	return closing, nil
}

// GetPeriod retrieves one closing period
func (s *ClosingService) GetPeriod(ctx context.Context, period string) (*entity.ClosingPeriod, error) {
	closing, err := s.closingRepo.Get(ctx, period)
	if err != nil {
		return nil, err
	}
	if closing == nil {
		return nil, apperror.NewNotFoundError("Closing period")
	}
	return closing, nil
}

// ListPeriods lists all closing periods
func (s *ClosingService) ListPeriods(ctx context.Context) ([]entity.ClosingPeriod, error) {
	return s.closingRepo.List(ctx)
}

// ReportRecordInput is one fiscal record from the finalized closing report
type ReportRecordInput struct {
	Number          string            `json:"number"`
	Value           decimal.Decimal   `json:"value"`
	Client          string            `json:"client"`
	EmissionDate    time.Time         `json:"emission_date"`
	PaymentDate     *time.Time        `json:"payment_date,omitempty"`
	MovementVendor  *string           `json:"movement_vendor,omitempty"`
	XMLVendor       string            `json:"xml_vendor"`
	FiscalStatus    enum.FiscalStatus `json:"fiscal_status"`
	DocumentType    enum.DocumentType `json:"document_type"`
	ReturnReference *string           `json:"return_reference,omitempty"`
}

// ImportReport replaces the period's fiscal records with the report contents.
// Records arrive unclassified; analysis is a separate explicit step.
func (s *ClosingService) ImportReport(ctx context.Context, period string, inputs []ReportRecordInput) (int, error) {
	closing, err := s.GetPeriod(ctx, period)
	if err != nil {
		return 0, err
	}
	if closing.Locked {
		return 0, apperror.ErrPeriodLocked
	}

	records := make([]entity.FiscalRecord, 0, len(inputs))
	for _, in := range inputs {
		if in.Number == "" {
			return 0, apperror.NewBadRequestError("Report record without document number")
		}
		if in.Value.LessThanOrEqual(decimal.Zero) {
			return 0, apperror.Wrap(apperror.ErrInvalidAmount, nil)
		}
		if !in.FiscalStatus.IsValid() || !in.DocumentType.IsValid() {
			return 0, apperror.NewBadRequestError("Report record with unknown fiscal status or document type")
		}
		records = append(records, entity.FiscalRecord{
			Number:           in.Number,
			Period:           period,
			Value:            in.Value,
			Client:           in.Client,
			EmissionDate:     in.EmissionDate,
			PaymentDate:      in.PaymentDate,
			MovementVendor:   in.MovementVendor,
			XMLVendor:        in.XMLVendor,
			FiscalStatus:     in.FiscalStatus,
			DocumentType:     in.DocumentType,
			ReturnReference:  in.ReturnReference,
			DivergenceStatus: enum.DivergenceStatusDivergente,
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.fiscalRepo.DeleteByPeriod(ctx, period); err != nil {
			return err
		}
		return s.fiscalRepo.CreateBatch(ctx, records)
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"period":  period,
		"records": len(records),
	}).Info("closing report imported")

	return len(records), nil
}

// Analyze classifies every record of the period and persists the outcome
func (s *ClosingService) Analyze(ctx context.Context, period string) (map[enum.DivergenceType]int64, error) {
	closing, err := s.GetPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if closing.Locked {
		return nil, apperror.ErrPeriodLocked
	}

	records, err := s.fiscalRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		for i := range records {
			record := &records[i]
			if record.IsResolved() {
				// Resolved records keep their outcome across re-analysis
				continue
			}
			status, divergence := ClassifyRecord(record)
			record.DivergenceStatus = status
			record.DivergenceType = divergence
			if status == enum.DivergenceStatusOK && record.FinalVendor == nil {
				vendor := record.XMLVendor
				if record.HasMovement() {
					vendor = *record.MovementVendor
				}
				record.FinalVendor = &vendor
			}
			if err := s.fiscalRepo.Update(ctx, record); err != nil {
				return err
			}
		}

		now := time.Now()
		closing.AnalyzedAt = &now
		return s.closingRepo.Update(ctx, closing)
	})
	if err != nil {
		return nil, err
	}

	return s.fiscalRepo.CountByDivergenceType(ctx, period)
}

// Finalize seeds the ledger from the analyzed report and recalculates
// commissions. Only records with a recorded movement emit report events;
// documents without movement enter the ledger through their resolutions.
func (s *ClosingService) Finalize(ctx context.Context, period string, actor uuid.UUID) (*entity.ClosingPeriod, error) {
	closing, err := s.GetPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if closing.Locked {
		return nil, apperror.ErrPeriodLocked
	}
	if closing.AnalyzedAt == nil {
		return nil, apperror.NewBadRequestError("Period must be analyzed before finalization")
	}

	records, err := s.fiscalRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	events := make([]entity.LedgerEvent, 0, len(records))
	totalSales := decimal.Zero
	totalReturns := decimal.Zero

	for i := range records {
		record := &records[i]
		if !record.HasMovement() {
			continue
		}

		vendor := *record.MovementVendor
		switch {
		case record.ReportVendor != nil:
			// The resolution's adjustment legs already moved the value; the
			// report event keeps debiting their from side
			vendor = *record.ReportVendor
		case record.FinalVendor != nil && *record.FinalVendor != entity.VendorEstornado:
			vendor = *record.FinalVendor
		}

		event := entity.LedgerEvent{
			Period:      period,
			OriginID:    record.Number,
			Vendor:      vendor,
			Client:      record.Client,
			Description: "Fechamento " + period,
			RealDate:    record.PaymentDate,
			CreatedBy:   actor,
		}

		switch record.DocumentType {
		case enum.DocumentTypeDevolucao:
			event.Type = enum.LedgerEventDevolucao
			event.Subtype = enum.LedgerSubtypeOutros
			event.Value = record.Value.Neg()
			if record.ReturnReference != nil {
				event.OriginID = *record.ReturnReference
			}
			totalReturns = totalReturns.Add(record.Value)
		case enum.DocumentTypeFaturada:
			event.Type = enum.LedgerEventVenda
			event.Subtype = enum.LedgerSubtypeFaturada
			event.Value = record.Value
			event.RealDate = &record.EmissionDate
			totalSales = totalSales.Add(record.Value)
		default:
			event.Type = enum.LedgerEventVenda
			event.Subtype = enum.LedgerSubtypeAVista
			event.Value = record.Value
			totalSales = totalSales.Add(record.Value)
		}

		events = append(events, event)
	}

	if err := s.ledger.IngestReportEvents(ctx, period, events); err != nil {
		return nil, err
	}

	if _, err := s.commissions.Recalculate(ctx, period); err != nil {
		return nil, err
	}

	now := time.Now()
	closing.IngestedAt = &now
	closing.TotalSales = totalSales
	closing.TotalReturns = totalReturns
	if err := s.closingRepo.Update(ctx, closing); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"period":        period,
		"events":        len(events),
		"total_sales":   totalSales.String(),
		"total_returns": totalReturns.String(),
	}).Info("closing finalized")

	return closing, nil
}

// Lock closes the period for good. The flag is one-way: there is no unlock.
func (s *ClosingService) Lock(ctx context.Context, period string) (*entity.ClosingPeriod, error) {
	closing, err := s.GetPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	if closing.Locked {
		return nil, apperror.ErrPeriodLocked
	}

	now := time.Now()
	closing.Locked = true
	closing.LockedAt = &now
	closing.Status = enum.PeriodStatusFechado
	if err := s.closingRepo.Update(ctx, closing); err != nil {
		return nil, err
	}

	s.logger.WithField("period", period).Info("period locked")
	return closing, nil
}

// PeriodSummary aggregates a period's reconciliation state for reporting
type PeriodSummary struct {
	Period          string                        `json:"period"`
	Locked          bool                          `json:"locked"`
	TotalSales      decimal.Decimal               `json:"total_sales"`
	TotalReturns    decimal.Decimal               `json:"total_returns"`
	DivergenceCount map[enum.DivergenceType]int64 `json:"divergences_by_type"`
	VendorTotals    []repository.VendorTotal      `json:"vendor_totals"`
}

// Summary reports divergence counts and ledger totals for a period
func (s *ClosingService) Summary(ctx context.Context, period string) (*PeriodSummary, error) {
	closing, err := s.GetPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	counts, err := s.fiscalRepo.CountByDivergenceType(ctx, period)
	if err != nil {
		return nil, err
	}

	totals, err := s.ledger.VendorTotals(ctx, period)
	if err != nil {
		return nil, err
	}

	return &PeriodSummary{
		Period:          closing.Period,
		Locked:          closing.Locked,
		TotalSales:      closing.TotalSales,
		TotalReturns:    closing.TotalReturns,
		DivergenceCount: counts,
		VendorTotals:    totals,
	}, nil
}
