package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reserved vendor codes used by divergence resolution
const (
	VendorIndefinido = "INDEFINIDO"
	VendorLoja       = "LOJA"
	VendorEstornado  = "ESTORNADO"
)

// Vendor is a salesperson whose sales feed commission calculation
type Vendor struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code string    `gorm:"size:50;unique;not null" json:"code"`
	Name string    `gorm:"size:255;not null" json:"name"`
	// CommissionPercentage is the current configured rate applied on recalculation
	CommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"commission_percentage"`
	Active               bool            `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vendor
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}

// IsReservedVendorCode reports whether the code is one of the system vendors
func IsReservedVendorCode(code string) bool {
	return code == VendorIndefinido || code == VendorLoja || code == VendorEstornado
}
