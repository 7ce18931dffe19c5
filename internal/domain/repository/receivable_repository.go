package repository

import (
	"context"
	"time"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/pkg/pagination"
)

// ReceivableRepository defines the interface for receivable (título) data operations
type ReceivableRepository interface {
	Create(ctx context.Context, receivable *entity.Receivable) error
	GetByID(ctx context.Context, id string) (*entity.Receivable, error)
	// GetByIDForUpdate takes a row lock; it must be called inside a transaction
	// so balance updates against the same receivable serialize
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Receivable, error)
	Update(ctx context.Context, receivable *entity.Receivable) error
	List(ctx context.Context, params *ReceivableFilterParams) ([]entity.Receivable, int64, error)
	ListOpen(ctx context.Context, dueBefore *time.Time) ([]entity.Receivable, error)
	AddSettlement(ctx context.Context, settlement *entity.Settlement) error
}

// ReceivableFilterParams contains filtering parameters for receivable queries
type ReceivableFilterParams struct {
	Pagination  *pagination.PaginationParams
	Period      string
	Client      string
	Vendor      string
	Status      *enum.ReceivableStatus
	OverdueOnly bool
}
