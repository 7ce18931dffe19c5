package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// Receivable (título) is the current open balance owed by a client against one
// invoiced document. It is a projection derived from ledger events; the ledger
// stays the canonical event log, the receivable the canonical current balance.
type Receivable struct {
	// ID is the origin document number, which makes creation idempotent
	ID            string          `gorm:"size:50;primary_key" json:"id"`
	Period        string          `gorm:"size:7;not null;index" json:"period"`
	Client        string          `gorm:"size:255" json:"client"`
	Vendor        string          `gorm:"size:50;not null;index" json:"vendor"`
	OriginalValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"original_value"`
	PaidToDate    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"paid_to_date"`
	OpenBalance   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"open_balance"`
	EmissionDate  time.Time       `gorm:"type:date;not null" json:"emission_date"`
	DueDate       time.Time       `gorm:"type:date;not null;index" json:"due_date"`

	Status enum.ReceivableStatus `gorm:"size:20;not null;default:ABERTA;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Settlements []Settlement `gorm:"foreignKey:ReceivableID" json:"settlements,omitempty"`
}

// TableName returns the table name for the Receivable model
func (Receivable) TableName() string {
	return "receivables"
}

// EffectiveStatus derives the read-time status: an open receivable past its due
// date reports VENCIDA without being push-updated in storage
func (r *Receivable) EffectiveStatus(today time.Time) enum.ReceivableStatus {
	if r.Status.IsOpen() && r.DueDate.Before(today.Truncate(24*time.Hour)) {
		return enum.ReceivableStatusVencida
	}
	return r.Status
}

// IsOverdue reports whether the receivable is open and past due
func (r *Receivable) IsOverdue(today time.Time) bool {
	return r.EffectiveStatus(today) == enum.ReceivableStatusVencida
}

// Settlement (baixa) is one recorded payment against a receivable
type Settlement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceivableID string          `gorm:"size:50;not null;index" json:"receivable_id"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Method       string          `gorm:"size:50;not null" json:"method"`
	Note         string          `gorm:"size:500" json:"note"`
	Actor        uuid.UUID       `gorm:"type:uuid;not null" json:"actor"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new settlement
func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settlement model
func (Settlement) TableName() string {
	return "settlements"
}
