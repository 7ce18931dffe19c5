package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type fiscalRecordRepository struct {
	db *gorm.DB
}

// NewFiscalRecordRepository creates a new fiscal record repository
func NewFiscalRecordRepository(db *gorm.DB) domainRepo.FiscalRecordRepository {
	return &fiscalRecordRepository{db: db}
}

func (r *fiscalRecordRepository) conn(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *fiscalRecordRepository) Create(ctx context.Context, record *entity.FiscalRecord) error {
	return r.conn(ctx).Create(record).Error
}

func (r *fiscalRecordRepository) CreateBatch(ctx context.Context, records []entity.FiscalRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.conn(ctx).CreateInBatches(records, 500).Error
}

func (r *fiscalRecordRepository) GetByNumber(ctx context.Context, period, number string) (*entity.FiscalRecord, error) {
	var record entity.FiscalRecord
	err := r.conn(ctx).First(&record, "period = ? AND number = ?", period, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *fiscalRecordRepository) Update(ctx context.Context, record *entity.FiscalRecord) error {
	return r.conn(ctx).Save(record).Error
}

func (r *fiscalRecordRepository) List(ctx context.Context, params *domainRepo.FiscalRecordFilterParams) ([]entity.FiscalRecord, int64, error) {
	var records []entity.FiscalRecord
	var total int64

	query := r.conn(ctx).Model(&entity.FiscalRecord{})
	if params.Period != "" {
		query = query.Where("period = ?", params.Period)
	}
	if params.DivergenceStatus != nil {
		query = query.Where("divergence_status = ?", *params.DivergenceStatus)
	}
	if params.DivergenceType != nil {
		query = query.Where("divergence_type = ?", *params.DivergenceType)
	}
	if params.DocumentType != nil {
		query = query.Where("document_type = ?", *params.DocumentType)
	}
	if params.Vendor != "" {
		query = query.Where("movement_vendor = ? OR xml_vendor = ? OR final_vendor = ?",
			params.Vendor, params.Vendor, params.Vendor)
	}
	if params.Search != "" {
		query = query.Where("number ILIKE ? OR client ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("number ASC").
		Find(&records).Error

	return records, total, err
}

func (r *fiscalRecordRepository) ListByPeriod(ctx context.Context, period string) ([]entity.FiscalRecord, error) {
	var records []entity.FiscalRecord
	err := r.conn(ctx).
		Where("period = ?", period).
		Order("number ASC").
		Find(&records).Error
	return records, err
}

func (r *fiscalRecordRepository) CountByDivergenceType(ctx context.Context, period string) (map[enum.DivergenceType]int64, error) {
	type row struct {
		DivergenceType enum.DivergenceType
		Count          int64
	}
	var rows []row

	err := r.conn(ctx).Model(&entity.FiscalRecord{}).
		Select("divergence_type, COUNT(*) AS count").
		Where("period = ? AND divergence_status = ? AND divergence_type IS NOT NULL",
			period, enum.DivergenceStatusDivergente).
		Group("divergence_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enum.DivergenceType]int64, len(rows))
	for _, row := range rows {
		counts[row.DivergenceType] = row.Count
	}
	return counts, nil
}

func (r *fiscalRecordRepository) DeleteByPeriod(ctx context.Context, period string) error {
	return r.conn(ctx).Unscoped().
		Where("period = ?", period).
		Delete(&entity.FiscalRecord{}).Error
}
