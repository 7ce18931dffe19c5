package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/concilia-retail/concilia-api/internal/domain/enum"
)

// ResolutionRecord is one append-only audit row per divergence resolution action.
// Re-resolving never overwrites: each attempt appends a new record.
type ResolutionRecord struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Period         string                `gorm:"size:7;not null;index" json:"period"`
	RecordNumber   string                `gorm:"size:50;not null;index" json:"record_number"`
	DivergenceType enum.DivergenceType   `gorm:"size:40;not null" json:"divergence_type"`
	Action         enum.ResolutionAction `gorm:"size:20;not null" json:"action"`
	Note           string                `gorm:"size:1000" json:"note"`
	Actor          uuid.UUID             `gorm:"type:uuid;not null" json:"actor"`
	CreatedAt      time.Time             `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new resolution record
func (r *ResolutionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ResolutionRecord model
func (ResolutionRecord) TableName() string {
	return "resolution_records"
}
