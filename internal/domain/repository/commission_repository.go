package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
)

// CommissionRepository defines the interface for commission data operations.
// Recalculation replaces a period wholesale: DeleteByPeriod then CreateBatch
// inside one transaction.
type CommissionRepository interface {
	DeleteByPeriod(ctx context.Context, period string) error
	CreateBatch(ctx context.Context, commissions []entity.Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error)
	Update(ctx context.Context, commission *entity.Commission) error
	ListByPeriod(ctx context.Context, period string) ([]entity.Commission, error)
}
