package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentClient is an API consumer (gateway-registered agent vendor). The raw
// API key is returned exactly once at creation; only its SHA-256 digest is
// stored, so lookups go through the digest.
type AgentClient struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Vendor     *string   `gorm:"size:255" json:"vendor,omitempty"`
	APIKeyHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}
