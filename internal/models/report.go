package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report is a single distress report, created once at intake and touched
// exactly once more by the screening worker. FinalSeverityScore and
// SeverityBucket are assigned at intake and never downgraded afterwards;
// screening may only fill SeverityBucket in when it is still NULL.
type Report struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Origin        Origin    `gorm:"size:20;not null;index" json:"origin"`
	AgentClientID *string   `gorm:"size:64;index" json:"agent_client_id,omitempty"`
	ReceivedAt    time.Time `gorm:"not null;index" json:"received_at"`
	UserHash      *string   `gorm:"size:128" json:"user_hash,omitempty"`
	SessionHash   *string   `gorm:"size:128" json:"session_hash,omitempty"`

	AbuseType            AbuseType      `gorm:"size:40;not null" json:"abuse_type"`
	AgentSeverityScore   *float64       `json:"agent_severity_score,omitempty"`
	FinalSeverityScore   float64        `json:"final_severity_score"`
	TranscriptSnippet    string         `gorm:"type:text" json:"transcript_snippet"`
	TriggerRules         datatypes.JSON `json:"trigger_rules,omitempty"`
	ClassificationLabels datatypes.JSON `json:"classification_labels"`

	SpamStatus      SpamStatus      `gorm:"size:20;not null;default:'UNSCREENED';index" json:"spam_status"`
	SpamFilterModel *string         `gorm:"size:128" json:"spam_filter_model,omitempty"`
	SignalLabel     *SignalLabel    `gorm:"size:20;index" json:"signal_label,omitempty"`
	SeverityBucket  *SeverityBucket `gorm:"size:10;index" json:"severity_bucket,omitempty"`

	// Web-form-only fields, NULL for agent-originated reports.
	WebReportType   *WebReportType `gorm:"size:40" json:"web_report_type,omitempty"`
	WebAISystem     *string        `gorm:"size:255" json:"web_ai_system,omitempty"`
	WebIsUrgent     *bool          `json:"web_is_urgent,omitempty"`
	WebContactEmail *string        `gorm:"size:255" json:"web_contact_email,omitempty"`
	WebClientIPHash *string        `gorm:"size:128" json:"web_client_ip_hash,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "distress_reports"
}
