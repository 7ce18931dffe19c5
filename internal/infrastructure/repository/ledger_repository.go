package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ledgerRepository) Append(ctx context.Context, event *entity.LedgerEvent) error {
	return r.conn(ctx).Create(event).Error
}

func (r *ledgerRepository) AppendBatch(ctx context.Context, events []entity.LedgerEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(events, 500).Error
}

func (r *ledgerRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.LedgerEvent, int64, error) {
	var events []entity.LedgerEvent
	var total int64

	query := r.conn(ctx).Model(&entity.LedgerEvent{})
	if params.Period != "" {
		query = query.Where("period = ?", params.Period)
	}
	if params.Vendor != "" {
		query = query.Where("vendor = ?", params.Vendor)
	}
	if params.OriginID != "" {
		query = query.Where("origin_id = ?", params.OriginID)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at ASC, id ASC").
		Find(&events).Error

	return events, total, err
}

func (r *ledgerRepository) ClearReportEvents(ctx context.Context, period string) error {
	return r.conn(ctx).
		Where("period = ? AND from_report = ?", period, true).
		Delete(&entity.LedgerEvent{}).Error
}

func (r *ledgerRepository) VendorTotals(ctx context.Context, period string) ([]domainRepo.VendorTotal, error) {
	var totals []domainRepo.VendorTotal
	err := r.conn(ctx).Model(&entity.LedgerEvent{}).
		Select("vendor, SUM(value) AS total").
		Where("period = ?", period).
		Group("vendor").
		Order("vendor ASC").
		Scan(&totals).Error
	return totals, err
}

// VendorSummaries splits each vendor's period into commission inputs: gross is
// the sum of positive non-payment values, returns the absolute sum of negative
// ones. Payment events settle receivables and never count toward commissions.
func (r *ledgerRepository) VendorSummaries(ctx context.Context, period string) ([]domainRepo.VendorLedgerSummary, error) {
	var summaries []domainRepo.VendorLedgerSummary
	err := r.conn(ctx).Model(&entity.LedgerEvent{}).
		Select("vendor, "+
			"COALESCE(SUM(CASE WHEN value > 0 THEN value ELSE 0 END), 0) AS gross, "+
			"COALESCE(SUM(CASE WHEN value < 0 THEN -value ELSE 0 END), 0) AS returns").
		Where("period = ? AND type <> ?", period, enum.LedgerEventPagamento).
		Group("vendor").
		Order("vendor ASC").
		Scan(&summaries).Error
	return summaries, err
}
