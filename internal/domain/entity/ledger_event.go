package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// LedgerEvent is one immutable signed monetary event. The ledger is append-only:
// events are never updated or deleted in normal operation, only bulk-cleared per
// period when a closing report is re-ingested.
type LedgerEvent struct {
	ID       uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Type     enum.LedgerEventType    `gorm:"size:20;not null;index" json:"type"`
	Subtype  enum.LedgerEventSubtype `gorm:"size:20;not null" json:"subtype"`
	Period   string                  `gorm:"size:7;not null;index" json:"period"`
	OriginID string                  `gorm:"size:50;not null;index" json:"origin_id"`
	Vendor   string                  `gorm:"size:50;not null;index" json:"vendor"`
	Value    decimal.Decimal         `gorm:"type:numeric(14,2);not null" json:"value"`

	// Free-form metadata carried for audit and reporting
	Description string     `gorm:"size:500" json:"description"`
	Client      string     `gorm:"size:255" json:"client"`
	RealDate    *time.Time `gorm:"type:date" json:"real_date,omitempty"`

	// FromReport marks events seeded by closing-report ingestion; only these are
	// cleared when a period is re-ingested
	FromReport bool `gorm:"not null;default:false;index" json:"from_report"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before appending a new ledger event
func (e *LedgerEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}

// IsReceivableSeed reports whether the event creates a receivable when projected
func (e *LedgerEvent) IsReceivableSeed() bool {
	return e.Type == enum.LedgerEventVenda && e.Subtype == enum.LedgerSubtypeFaturada
}

// IsReceivableReduction reports whether the event reduces an open receivable balance
func (e *LedgerEvent) IsReceivableReduction() bool {
	if e.Type.IsReduction() {
		return true
	}
	return e.Type == enum.LedgerEventAjuste && e.Value.IsNegative()
}
