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
	"github.com/concilia-retail/concilia-api/pkg/pagination"
)

// defaultDueDays is applied when an invoiced document has no explicit due date
const defaultDueDays = 28

// ReceivableService maintains the receivables sub-ledger: one open-balance
// record per invoiced document, driven exclusively by ledger events, plus the
// settlement (baixa) entry path that feeds payments back into the ledger.
type ReceivableService struct {
	receivableRepo repository.ReceivableRepository
	ledgerRepo     repository.LedgerRepository
	closingRepo    repository.ClosingRepository
	txManager      repository.TxManager
	logger         *logrus.Logger
}

// NewReceivableService creates a new receivable service
func NewReceivableService(
	receivableRepo repository.ReceivableRepository,
	ledgerRepo repository.LedgerRepository,
	closingRepo repository.ClosingRepository,
	txManager repository.TxManager,
	logger *logrus.Logger,
) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		ledgerRepo:     ledgerRepo,
		closingRepo:    closingRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// ApplyEvent runs the projection rule for one incoming ledger event. It is
// called inside the transaction that appended the event, in insertion order.
func (s *ReceivableService) ApplyEvent(ctx context.Context, event *entity.LedgerEvent) error {
	switch {
	case event.IsReceivableSeed():
		return s.createIfAbsent(ctx, event)
	case event.IsReceivableReduction():
		return s.applyReduction(ctx, event)
	default:
		return nil
	}
}

// createIfAbsent creates the receivable for a VENDA/FATURADA event. Creation is
// idempotent on the origin document id: re-processing the same event is a no-op.
func (s *ReceivableService) createIfAbsent(ctx context.Context, event *entity.LedgerEvent) error {
	existing, err := s.receivableRepo.GetByID(ctx, event.OriginID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	emission := event.CreatedAt
	if event.RealDate != nil {
		emission = *event.RealDate
	}

	receivable := &entity.Receivable{
		ID:            event.OriginID,
		Period:        event.Period,
		Client:        event.Client,
		Vendor:        event.Vendor,
		OriginalValue: event.Value,
		PaidToDate:    decimal.Zero,
		OpenBalance:   event.Value,
		EmissionDate:  emission,
		DueDate:       emission.AddDate(0, 0, defaultDueDays),
		Status:        enum.ReceivableStatusAberta,
	}
	return s.receivableRepo.Create(ctx, receivable)
}

// applyReduction decrements the open balance by the event's absolute value.
// Consuming the entire remaining balance cancels the receivable at exactly zero.
func (s *ReceivableService) applyReduction(ctx context.Context, event *entity.LedgerEvent) error {
	receivable, err := s.receivableRepo.GetByIDForUpdate(ctx, event.OriginID)
	if err != nil {
		return err
	}
	if receivable == nil {
		// Reductions against unknown documents have no projection effect
		return nil
	}
	if !receivable.Status.IsOpen() {
		return nil
	}

	reduction := event.Value.Abs()
	if reduction.GreaterThanOrEqual(receivable.OpenBalance) {
		receivable.OpenBalance = decimal.Zero
		receivable.Status = enum.ReceivableStatusCancelada
	} else {
		receivable.OpenBalance = receivable.OpenBalance.Sub(reduction)
		receivable.Status = enum.ReceivableStatusParcial
	}

	return s.receivableRepo.Update(ctx, receivable)
}

// SettlementInput represents a payment entered against a receivable
type SettlementInput struct {
	ReceivableID string
	Amount       decimal.Decimal
	Method       string
	Note         string
	Date         time.Time
	Actor        uuid.UUID
}

// RegisterSettlement records a baixa in one commit: validates the amount
// against the open balance, appends the settlement to history, updates balance
// and status, and emits the PAGAMENTO ledger event for the same amount.
// Locked periods still take settlements; the override is logged.
func (s *ReceivableService) RegisterSettlement(ctx context.Context, input *SettlementInput) (*entity.Receivable, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.ErrInvalidSettlementAmount
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	var settled *entity.Receivable
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		receivable, err := s.receivableRepo.GetByIDForUpdate(ctx, input.ReceivableID)
		if err != nil {
			return err
		}
		if receivable == nil {
			return apperror.ErrReceivableNotFound
		}
		if input.Amount.GreaterThan(receivable.OpenBalance) {
			return apperror.ErrInvalidSettlementAmount
		}

		closing, err := s.closingRepo.Get(ctx, receivable.Period)
		if err != nil {
			return err
		}
		if closing != nil && closing.Locked {
			s.logger.WithFields(logrus.Fields{
				"receivable": receivable.ID,
				"period":     receivable.Period,
			}).Warn("settlement appended into a locked period")
		}

		settlement := &entity.Settlement{
			ReceivableID: receivable.ID,
			Date:         input.Date,
			Amount:       input.Amount,
			Method:       input.Method,
			Note:         input.Note,
			Actor:        input.Actor,
		}
		if err := s.receivableRepo.AddSettlement(ctx, settlement); err != nil {
			return err
		}

		receivable.PaidToDate = receivable.PaidToDate.Add(input.Amount)
		receivable.OpenBalance = receivable.OpenBalance.Sub(input.Amount)
		if receivable.OpenBalance.IsZero() {
			receivable.Status = enum.ReceivableStatusPaga
		} else {
			receivable.Status = enum.ReceivableStatusParcial
		}
		if err := s.receivableRepo.Update(ctx, receivable); err != nil {
			return err
		}

		// The settlement itself is durable ledger history: the receivable stays
		// the canonical balance, the ledger the canonical event log
		event := &entity.LedgerEvent{
			Type:        enum.LedgerEventPagamento,
			Subtype:     enum.LedgerSubtypeOutros,
			Period:      receivable.Period,
			OriginID:    receivable.ID,
			Vendor:      receivable.Vendor,
			Value:       input.Amount,
			Description: "Baixa de título via " + input.Method,
			Client:      receivable.Client,
			RealDate:    &input.Date,
			CreatedBy:   input.Actor,
		}
		if err := s.ledgerRepo.Append(ctx, event); err != nil {
			return err
		}

		settled = receivable
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"receivable": settled.ID,
		"amount":     input.Amount.String(),
		"status":     settled.Status,
	}).Info("settlement registered")

	return settled, nil
}

// GetReceivable retrieves a receivable with its settlement history
func (s *ReceivableService) GetReceivable(ctx context.Context, id string) (*entity.Receivable, error) {
	receivable, err := s.receivableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, apperror.ErrReceivableNotFound
	}
	receivable.Status = receivable.EffectiveStatus(time.Now())
	return receivable, nil
}

// ListReceivables lists receivables with filtering; VENCIDA is derived at read
// time for open entries past their due date
func (s *ReceivableService) ListReceivables(ctx context.Context, params *repository.ReceivableFilterParams) (*pagination.PaginatedResult[entity.Receivable], error) {
	receivables, total, err := s.receivableRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range receivables {
		receivables[i].Status = receivables[i].EffectiveStatus(now)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receivables, pag), nil
}

// AgingBucket groups open receivables by how far past due they are
type AgingBucket struct {
	Label string          `json:"label"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AgingSummary buckets every open receivable by days overdue
func (s *ReceivableService) AgingSummary(ctx context.Context) ([]AgingBucket, error) {
	open, err := s.receivableRepo.ListOpen(ctx, nil)
	if err != nil {
		return nil, err
	}

	buckets := []AgingBucket{
		{Label: "a_vencer", Total: decimal.Zero},
		{Label: "ate_30", Total: decimal.Zero},
		{Label: "31_60", Total: decimal.Zero},
		{Label: "61_90", Total: decimal.Zero},
		{Label: "acima_90", Total: decimal.Zero},
	}

	now := time.Now()
	for _, r := range open {
		idx := 0
		if r.IsOverdue(now) {
			days := int(now.Sub(r.DueDate).Hours() / 24)
			switch {
			case days <= 30:
				idx = 1
			case days <= 60:
				idx = 2
			case days <= 90:
				idx = 3
			default:
				idx = 4
			}
		}
		buckets[idx].Count++
		buckets[idx].Total = buckets[idx].Total.Add(r.OpenBalance)
	}

	return buckets, nil
}
