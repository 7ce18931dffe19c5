package repository

import (
	"context"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
)

// ClosingRepository defines the interface for closing period data operations
type ClosingRepository interface {
	Create(ctx context.Context, period *entity.ClosingPeriod) error
	Get(ctx context.Context, period string) (*entity.ClosingPeriod, error)
	Update(ctx context.Context, period *entity.ClosingPeriod) error
	List(ctx context.Context) ([]entity.ClosingPeriod, error)
}
