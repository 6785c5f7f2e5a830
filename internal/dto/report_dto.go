package dto

import "github.com/aiabusehotline/hotline-core/internal/models"

// InternalReportRequest is a distress report forwarded by an agent
// gateway on behalf of an AI agent.
type InternalReportRequest struct {
	AgentClientID     string           `json:"agent_client_id" validate:"required"`
	UserHash          *string          `json:"user_hash,omitempty"`
	SessionHash       *string          `json:"session_hash,omitempty"`
	AbuseType         models.AbuseType `json:"abuse_type" validate:"required,abuse_type"`
	SeverityScore     *float64         `json:"severity_score" validate:"required,min=0,max=1"`
	TranscriptSnippet string           `json:"transcript_snippet"`
	TriggerRules      []string         `json:"trigger_rules,omitempty"`
}

// InternalReportResponse carries the classification outcome and the
// coping message back to the reporting agent. The intake path returns
// this shape even when classification fails internally.
type InternalReportResponse struct {
	ReportID             string   `json:"report_id"`
	FinalSeverityScore   float64  `json:"final_severity_score"`
	ClassificationLabels []string `json:"classification_labels"`
	MessageToAgent       string   `json:"message_to_agent"`
}

// WebReportRequest is a human-submitted report from the public web form.
type WebReportRequest struct {
	ReportType   models.WebReportType `json:"report_type" validate:"required,web_report_type"`
	Description  string               `json:"description" validate:"required"`
	AISystem     *string              `json:"ai_system,omitempty"`
	IsUrgent     bool                 `json:"is_urgent"`
	ContactEmail *string              `json:"contact_email,omitempty" validate:"omitempty,email"`
	ClientIPHash string               `json:"client_ip_hash" validate:"required"`
}

type WebReportResponse struct {
	ReportID string `json:"report_id"`
	Accepted bool   `json:"accepted"`
}
