package repository

import (
	"context"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
)

// ResolutionRepository defines the interface for the resolution audit trail.
// Records are append-only: there is no update or delete.
type ResolutionRepository interface {
	Create(ctx context.Context, record *entity.ResolutionRecord) error
	ListByRecord(ctx context.Context, period, number string) ([]entity.ResolutionRecord, error)
	ListByPeriod(ctx context.Context, period string) ([]entity.ResolutionRecord, error)
}
