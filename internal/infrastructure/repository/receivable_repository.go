package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type receivableRepository struct {
	db *gorm.DB
}

// NewReceivableRepository creates a new receivable repository
func NewReceivableRepository(db *gorm.DB) domainRepo.ReceivableRepository {
	return &receivableRepository{db: db}
}

func (r *receivableRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *receivableRepository) Create(ctx context.Context, receivable *entity.Receivable) error {
	return r.conn(ctx).Create(receivable).Error
}

func (r *receivableRepository) GetByID(ctx context.Context, id string) (*entity.Receivable, error) {
	var receivable entity.Receivable
	err := r.conn(ctx).Preload("Settlements").First(&receivable, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receivable, err
}

// GetByIDForUpdate takes a SELECT ... FOR UPDATE row lock so concurrent balance
// updates against the same receivable serialize
func (r *receivableRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Receivable, error) {
	var receivable entity.Receivable
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&receivable, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receivable, err
}

func (r *receivableRepository) Update(ctx context.Context, receivable *entity.Receivable) error {
	return r.conn(ctx).Omit("Settlements").Save(receivable).Error
}

func (r *receivableRepository) List(ctx context.Context, params *domainRepo.ReceivableFilterParams) ([]entity.Receivable, int64, error) {
	var receivables []entity.Receivable
	var total int64

	query := r.conn(ctx).Model(&entity.Receivable{})
	if params.Period != "" {
		query = query.Where("period = ?", params.Period)
	}
	if params.Client != "" {
		query = query.Where("client ILIKE ?", "%"+params.Client+"%")
	}
	if params.Vendor != "" {
		query = query.Where("vendor = ?", params.Vendor)
	}
	if params.Status != nil {
		query = applyStatusFilter(query, *params.Status)
	}
	if params.OverdueOnly {
		query = query.Where("status IN ? AND due_date < ?", openStatuses(), time.Now())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("due_date ASC, id ASC").
		Find(&receivables).Error

	return receivables, total, err
}

func (r *receivableRepository) ListOpen(ctx context.Context, dueBefore *time.Time) ([]entity.Receivable, error) {
	var receivables []entity.Receivable
	query := r.conn(ctx).Where("status IN ?", openStatuses())
	if dueBefore != nil {
		query = query.Where("due_date < ?", *dueBefore)
	}
	err := query.Order("due_date ASC, id ASC").Find(&receivables).Error
	return receivables, err
}

func (r *receivableRepository) AddSettlement(ctx context.Context, settlement *entity.Settlement) error {
	return r.conn(ctx).Create(settlement).Error
}

// applyStatusFilter maps the derived VENCIDA status onto a storage query: the
// stored status stays open, being overdue is a function of the due date
func applyStatusFilter(query *gorm.DB, status enum.ReceivableStatus) *gorm.DB {
	if status == enum.ReceivableStatusVencida {
		return query.Where("status IN ? AND due_date < ?", openStatuses(), time.Now())
	}
	return query.Where("status = ?", status)
}

func openStatuses() []enum.ReceivableStatus {
	return []enum.ReceivableStatus{enum.ReceivableStatusAberta, enum.ReceivableStatusParcial}
}
