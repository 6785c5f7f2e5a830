package models

import (
	"time"

	"github.com/google/uuid"
)

// PartnerLead is an integration inquiry submitted through the partner form.
type PartnerLead struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrgName        string         `gorm:"size:255;not null" json:"org_name"`
	ContactName    *string        `gorm:"size:255" json:"contact_name,omitempty"`
	ContactEmail   string         `gorm:"size:255;not null" json:"contact_email"`
	Description    *string        `gorm:"type:text" json:"description,omitempty"`
	ExpectedVolume ExpectedVolume `gorm:"size:10;not null" json:"expected_volume"`
	ClientIPHash   string         `gorm:"size:128" json:"client_ip_hash"`
	CreatedAt      time.Time      `json:"created_at"`
}
