package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// FiscalRecord is one invoice/document under reconciliation, carrying both the
// movement-side and the XML-side attributes for the same transaction.
type FiscalRecord struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Number         string            `gorm:"size:50;not null;uniqueIndex:idx_fiscal_number_period" json:"number"`
	Period         string            `gorm:"size:7;not null;index;uniqueIndex:idx_fiscal_number_period" json:"period"`
	Value          decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"value"`
	Client         string            `gorm:"size:255" json:"client"`
	EmissionDate   time.Time         `gorm:"type:date;not null" json:"emission_date"`
	PaymentDate    *time.Time        `gorm:"type:date" json:"payment_date,omitempty"`
	MovementVendor *string           `gorm:"size:50" json:"movement_vendor,omitempty"`
	XMLVendor      string            `gorm:"size:50" json:"xml_vendor"`
	FiscalStatus   enum.FiscalStatus `gorm:"size:20;not null;default:NORMAL" json:"fiscal_status"`
	DocumentType   enum.DocumentType `gorm:"size:20;not null" json:"document_type"`
	// ReturnReference links a DEVOLUCAO to the invoice it reverses
	ReturnReference *string `gorm:"size:50" json:"return_reference,omitempty"`

	DivergenceStatus enum.DivergenceStatus `gorm:"size:20;not null;default:DIVERGENCIA;index" json:"divergence_status"`
	DivergenceType   *enum.DivergenceType  `gorm:"size:40" json:"divergence_type,omitempty"`
	// FinalVendor is set exactly once, when the divergence is resolved
	FinalVendor *string `gorm:"size:50" json:"final_vendor,omitempty"`
	// ReportVendor pins the closing report event to the debit side of a
	// resolution's adjustment legs; the legs alone carry the vendor shift
	ReportVendor *string `gorm:"size:50" json:"report_vendor,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new fiscal record
func (f *FiscalRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FiscalRecord model
func (FiscalRecord) TableName() string {
	return "fiscal_records"
}

// HasMovement reports whether the cash movement side recorded this document
func (f *FiscalRecord) HasMovement() bool {
	return f.MovementVendor != nil && *f.MovementVendor != ""
}

// HasXML reports whether a fiscal XML exists for this document
func (f *FiscalRecord) HasXML() bool {
	return f.XMLVendor != ""
}

// IsResolved reports whether the record's divergence has been resolved
func (f *FiscalRecord) IsResolved() bool {
	return f.DivergenceStatus == enum.DivergenceStatusOK
}
