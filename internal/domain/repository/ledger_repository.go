package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/internal/domain/enum"
	"github.com/concilia-retail/concilia-api/pkg/pagination"
)

// LedgerRepository defines the interface for the append-only ledger.
// There is no update or single delete: events are immutable once appended,
// and only report-derived events can be cleared per period for re-ingestion.
type LedgerRepository interface {
	Append(ctx context.Context, event *entity.LedgerEvent) error
	AppendBatch(ctx context.Context, events []entity.LedgerEvent) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.LedgerEvent, int64, error)
	ClearReportEvents(ctx context.Context, period string) error
	VendorTotals(ctx context.Context, period string) ([]VendorTotal, error)
	VendorSummaries(ctx context.Context, period string) ([]VendorLedgerSummary, error)
}

// LedgerFilterParams contains filtering parameters for ledger queries
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	Period     string
	Vendor     string
	OriginID   string
	Type       *enum.LedgerEventType
}

// VendorTotal is the sum of all signed event values for one vendor in a period
type VendorTotal struct {
	Vendor string          `json:"vendor"`
	Total  decimal.Decimal `json:"total"`
}

// VendorLedgerSummary splits a vendor's period into commission inputs: gross
// sales and the return/estorno total
type VendorLedgerSummary struct {
	Vendor  string          `json:"vendor"`
	Gross   decimal.Decimal `json:"gross"`
	Returns decimal.Decimal `json:"returns"`
}
