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
	"github.com/concilia-retail/concilia-api/pkg/pagination"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

// ingestChunkSize bounds how many events one ingestion transaction carries,
// below the storage layer's batched-write limit
const ingestChunkSize = 400

// LedgerService owns the append-only log of signed monetary events. Every
// append synchronously drives the receivables projection in the same commit.
type LedgerService struct {
	ledgerRepo  repository.LedgerRepository
	closingRepo repository.ClosingRepository
	receivables *ReceivableService
	txManager   repository.TxManager
	logger      *logrus.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	closingRepo repository.ClosingRepository,
	receivables *ReceivableService,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		closingRepo: closingRepo,
		receivables: receivables,
		txManager:   txManager,
		logger:      logger,
	}
}

// AdjustmentInput represents a manual ledger adjustment entered by an operator
type AdjustmentInput struct {
	Period      string
	OriginID    string
	Vendor      string
	Value       decimal.Decimal
	Description string
	Actor       uuid.UUID
}

// RecordAdjustment appends one manual AJUSTE event and runs the projection,
// atomically. Locked periods refuse adjustments outright.
func (s *LedgerService) RecordAdjustment(ctx context.Context, input *AdjustmentInput) (*entity.LedgerEvent, error) {
	if !utils.IsValidPeriod(input.Period) {
		return nil, apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}
	if input.Value.IsZero() {
		return nil, apperror.ErrInvalidAmount
	}
	if input.Vendor == "" || input.OriginID == "" {
		return nil, apperror.NewBadRequestError("Vendor and origin document are required")
	}
	if err := s.ensureUnlocked(ctx, input.Period); err != nil {
		return nil, err
	}

	event := &entity.LedgerEvent{
		Type:        enum.LedgerEventAjuste,
		Subtype:     enum.LedgerSubtypeManual,
		Period:      input.Period,
		OriginID:    input.OriginID,
		Vendor:      input.Vendor,
		Value:       input.Value,
		Description: input.Description,
		CreatedBy:   input.Actor,
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		return s.appendAndProject(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"period": event.Period,
		"vendor": event.Vendor,
		"value":  event.Value.String(),
	}).Info("manual adjustment recorded")

	return event, nil
}

// appendAndProject appends one event and immediately runs the receivables
// projection for it; the caller supplies the transaction
func (s *LedgerService) appendAndProject(ctx context.Context, event *entity.LedgerEvent) error {
	if err := s.ledgerRepo.Append(ctx, event); err != nil {
		return err
	}
	return s.receivables.ApplyEvent(ctx, event)
}

// IngestReportEvents replaces a period's report-derived events with a fresh
// batch from the finalized closing report. Prior report events are cleared
// first, so re-ingestion never duplicates; adjustment and settlement events
// survive the clear. Chunks commit sequentially, each atomic, and the
// projection runs per event in insertion order.
func (s *LedgerService) IngestReportEvents(ctx context.Context, period string, events []entity.LedgerEvent) error {
	if err := s.ensureUnlocked(ctx, period); err != nil {
		return err
	}

	if err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		return s.ledgerRepo.ClearReportEvents(ctx, period)
	}); err != nil {
		return err
	}

	for start := 0; start < len(events); start += ingestChunkSize {
		end := start + ingestChunkSize
		if end > len(events) {
			end = len(events)
		}
		chunk := events[start:end]

		err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
			for i := range chunk {
				chunk[i].FromReport = true
			}
			if err := s.ledgerRepo.AppendBatch(ctx, chunk); err != nil {
				return err
			}
			for i := range chunk {
				if err := s.receivables.ApplyEvent(ctx, &chunk[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"period": period,
		"events": len(events),
	}).Info("closing report ingested into ledger")

	return nil
}

// ListEvents lists ledger events with filtering
func (s *LedgerService) ListEvents(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.LedgerEvent], error) {
	events, total, err := s.ledgerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(events, pag), nil
}

// VendorTotals returns the signed sum of all events per vendor for a period
func (s *LedgerService) VendorTotals(ctx context.Context, period string) ([]repository.VendorTotal, error) {
	if !utils.IsValidPeriod(period) {
		return nil, apperror.NewBadRequestError("Invalid period, expected YYYY-MM")
	}
	return s.ledgerRepo.VendorTotals(ctx, period)
}

// ensureUnlocked refuses writes into a locked period. Locking is one-way:
// there is no reopen, so this check never races toward unlocked.
func (s *LedgerService) ensureUnlocked(ctx context.Context, period string) error {
	closing, err := s.closingRepo.Get(ctx, period)
	if err != nil {
		return err
	}
	if closing != nil && closing.Locked {
		return apperror.ErrPeriodLocked
	}
	return nil
}
