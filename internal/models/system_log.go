package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores structured ERROR+ log records so operational failures
// (classifier outages, notification errors) survive process restarts.
type SystemLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	ReportID  *string        `gorm:"size:36;index" json:"report_id,omitempty"`
	Origin    string         `gorm:"size:20" json:"origin,omitempty"`
	Action    string         `gorm:"size:100" json:"action,omitempty"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	LatencyMs int            `json:"latency_ms,omitempty"`
	Extra     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}
