package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/internal/domain/repository"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
	"github.com/concilia-retail/concilia-api/pkg/pagination"
)

// DivergenceService resolves classified divergences: it executes the pure
// resolution plan as one atomic commit covering the document mutation, the
// audit record, the compensating ledger events and the receivables projection.
type DivergenceService struct {
	fiscalRepo     repository.FiscalRecordRepository
	resolutionRepo repository.ResolutionRepository
	ledgerRepo     repository.LedgerRepository
	closingRepo    repository.ClosingRepository
	receivables    *ReceivableService
	txManager      repository.TxManager
	logger         *logrus.Logger
}

// NewDivergenceService creates a new divergence service
func NewDivergenceService(
	fiscalRepo repository.FiscalRecordRepository,
	resolutionRepo repository.ResolutionRepository,
	ledgerRepo repository.LedgerRepository,
	closingRepo repository.ClosingRepository,
	receivables *ReceivableService,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *DivergenceService {
	return &DivergenceService{
		fiscalRepo:     fiscalRepo,
		resolutionRepo: resolutionRepo,
		ledgerRepo:     ledgerRepo,
		closingRepo:    closingRepo,
		receivables:    receivables,
		txManager:      txManager,
		logger:         logger,
	}
}

// ResolveInput represents an operator's resolution of one divergence
type ResolveInput struct {
	Period  string
	Number  string
	Action  enum.ResolutionAction
	Payload ResolutionPayload
	Actor   uuid.UUID
}

// Resolve applies the chosen action to a divergent record. Validation happens
// before any write; the document mutation, resolution record and ledger
// adjustments commit together or not at all.
func (s *DivergenceService) Resolve(ctx context.Context, input *ResolveInput) (*entity.FiscalRecord, error) {
	record, err := s.fiscalRepo.GetByNumber(ctx, input.Period, input.Number)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Fiscal record")
	}
	if record.IsResolved() {
		return nil, apperror.ErrDivergenceAlreadyResolved
	}

	closing, err := s.closingRepo.Get(ctx, input.Period)
	if err != nil {
		return nil, err
	}
	if closing != nil && closing.Locked {
		return nil, apperror.ErrPeriodLocked
	}

	plan, err := PlanResolution(record, input.Action, input.Payload)
	if err != nil {
		return nil, err
	}

	divergenceType := *record.DivergenceType

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		applyMutation(record, &plan.Mutation)
		if err := s.fiscalRepo.Update(ctx, record); err != nil {
			return err
		}

		resolution := &entity.ResolutionRecord{
			Period:         input.Period,
			RecordNumber:   record.Number,
			DivergenceType: divergenceType,
			Action:         input.Action,
			Note:           composeNote(input.Action, input.Payload.Comment),
			Actor:          input.Actor,
		}
		if err := s.resolutionRepo.Create(ctx, resolution); err != nil {
			return err
		}

		// Debit leg first, then credit leg; both legs stay visible in the
		// audit trail, never netted
		for _, adj := range plan.Adjustments {
			event := &entity.LedgerEvent{
				Type:        adj.Type,
				Subtype:     adj.Subtype,
				Period:      input.Period,
				OriginID:    record.Number,
				Vendor:      adj.Vendor,
				Value:       adj.Value,
				RealDate:    adj.RealDate,
				Description: input.Action.Label(),
				Client:      record.Client,
				CreatedBy:   input.Actor,
			}
			if err := s.ledgerRepo.Append(ctx, event); err != nil {
				return err
			}
			if err := s.receivables.ApplyEvent(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"period":     input.Period,
		"record":     record.Number,
		"divergence": divergenceType,
		"action":     input.Action,
	}).Info("divergence resolved")

	return record, nil
}

// applyMutation writes the plan's document mutation onto the record and closes
// the divergence
func applyMutation(record *entity.FiscalRecord, mutation *DocumentMutation) {
	if mutation.FinalVendor != "" {
		vendor := mutation.FinalVendor
		record.FinalVendor = &vendor
	}
	if mutation.ReportVendor != "" {
		vendor := mutation.ReportVendor
		record.ReportVendor = &vendor
	}
	if mutation.ForcePaymentDateToEmission {
		emission := record.EmissionDate
		record.PaymentDate = &emission
	}
	if mutation.ForceDocumentType != nil {
		record.DocumentType = *mutation.ForceDocumentType
	}
	if mutation.ReturnReference != nil {
		record.ReturnReference = mutation.ReturnReference
	}
	record.DivergenceStatus = enum.DivergenceStatusOK
}

// composeNote joins the action label with the operator's free-text comment
func composeNote(action enum.ResolutionAction, comment string) string {
	if comment == "" {
		return action.Label()
	}
	return action.Label() + ". " + comment
}

// ListDivergences lists a period's fiscal records filtered to open divergences
// unless the caller asks for all
func (s *DivergenceService) ListDivergences(ctx context.Context, params *repository.FiscalRecordFilterParams) (*pagination.PaginatedResult[entity.FiscalRecord], error) {
	records, total, err := s.fiscalRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(records, pag), nil
}

// ListResolutions returns the append-only audit trail for one record
func (s *DivergenceService) ListResolutions(ctx context.Context, period, number string) ([]entity.ResolutionRecord, error) {
	return s.resolutionRepo.ListByRecord(ctx, period, number)
}
