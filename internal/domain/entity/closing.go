package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// ClosingPeriod tracks one monthly closing: analysis, ledger ingestion and the
// one-way lock. The period identifier (YYYY-MM) is the primary key.
type ClosingPeriod struct {
	Period string            `gorm:"size:7;primary_key" json:"period"`
	Status enum.PeriodStatus `gorm:"size:20;not null;default:ABERTO" json:"status"`
	// Locked is monotonic: once set it is never cleared, there is no reopen
	Locked bool `gorm:"not null;default:false" json:"locked"`

	AnalyzedAt *time.Time `json:"analyzed_at,omitempty"`
	IngestedAt *time.Time `json:"ingested_at,omitempty"`
	LockedAt   *time.Time `json:"locked_at,omitempty"`

	// Totals snapshot written at finalization
	TotalSales   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_sales"`
	TotalReturns decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_returns"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the ClosingPeriod model
func (ClosingPeriod) TableName() string {
	return "closing_periods"
}
