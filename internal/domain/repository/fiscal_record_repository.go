package repository

import (
	"context"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/pkg/pagination"
)

// FiscalRecordRepository defines the interface for fiscal record data operations
type FiscalRecordRepository interface {
	Create(ctx context.Context, record *entity.FiscalRecord) error
	CreateBatch(ctx context.Context, records []entity.FiscalRecord) error
	GetByNumber(ctx context.Context, period, number string) (*entity.FiscalRecord, error)
	Update(ctx context.Context, record *entity.FiscalRecord) error
	List(ctx context.Context, params *FiscalRecordFilterParams) ([]entity.FiscalRecord, int64, error)
	ListByPeriod(ctx context.Context, period string) ([]entity.FiscalRecord, error)
	CountByDivergenceType(ctx context.Context, period string) (map[enum.DivergenceType]int64, error)
	DeleteByPeriod(ctx context.Context, period string) error
}

// FiscalRecordFilterParams contains filtering parameters for fiscal record queries
type FiscalRecordFilterParams struct {
	Pagination       *pagination.PaginationParams
	Period           string
	Search           string
	DivergenceStatus *enum.DivergenceStatus
	DivergenceType   *enum.DivergenceType
	DocumentType     *enum.DocumentType
	Vendor           string
}
