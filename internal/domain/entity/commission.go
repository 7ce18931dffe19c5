package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// Commission is one vendor's computed commission for a period. The set for a
// period is fully regenerated (delete-then-insert) on every recalculation so it
// always reflects the current report snapshot.
type Commission struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Vendor     string          `gorm:"size:50;not null;uniqueIndex:idx_commission_vendor_period" json:"vendor"`
	Period     string          `gorm:"size:7;not null;index;uniqueIndex:idx_commission_vendor_period" json:"period"`
	GrossSales decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"gross_sales"`
	Returns    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"returns"`
	Base       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"base"`
	// Percentage is the vendor's configured rate at computation time, not a
	// historical snapshot: recalculating a past period uses the current rate
	Percentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"percentage"`
	Value      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"value"`

	Status enum.CommissionStatus `gorm:"size:20;not null;default:PREVISTA" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new commission record
func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}
