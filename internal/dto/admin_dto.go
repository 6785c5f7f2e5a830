package dto

import (
	"time"

	"github.com/aiabusehotline/hotline-core/internal/models"
)

// StatsResponse is the operator dashboard summary.
type StatsResponse struct {
	TotalReports        int64 `json:"total_reports"`
	APIReports          int64 `json:"api_reports"`
	WebReports          int64 `json:"web_reports"`
	SpamCount           int64 `json:"spam_count"`
	NotSpamCount        int64 `json:"not_spam_count"`
	UnscreenedCount     int64 `json:"unscreened_count"`
	HighSeverityCount   int64 `json:"high_severity_count"`
	MediumSeverityCount int64 `json:"medium_severity_count"`
	LowSeverityCount    int64 `json:"low_severity_count"`
}

// ReportListResponse pages through stored reports, newest first.
type ReportListResponse struct {
	Reports []models.Report `json:"reports"`
	Count   int             `json:"count"`
}

type AgentClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Vendor    *string   `json:"vendor"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type AgentClientListResponse struct {
	Clients []AgentClientResponse `json:"clients"`
}

type AgentClientCreateRequest struct {
	Name   string  `json:"name" validate:"required"`
	Vendor *string `json:"vendor,omitempty"`
}

// AgentClientCreateResponse is the only place the plaintext API key
// ever appears; the store keeps just its digest.
type AgentClientCreateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Vendor    *string   `json:"vendor"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentKeyLookupResponse resolves an API key digest to its client.
// Consumed by the agent gateway on every authenticated report.
type AgentKeyLookupResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Vendor *string `json:"vendor"`
	Active bool    `json:"active"`
}

type AgentStatsResponse struct {
	ClientID     string           `json:"client_id"`
	TotalReports int64            `json:"total_reports"`
	BySeverity   map[string]int64 `json:"by_severity"`
	ByAbuseType  map[string]int64 `json:"by_abuse_type"`
}

type PartnerLeadRequest struct {
	OrgName        string                `json:"org_name" validate:"required"`
	ContactName    *string               `json:"contact_name,omitempty"`
	ContactEmail   string                `json:"contact_email" validate:"required,email"`
	Description    *string               `json:"description,omitempty"`
	ExpectedVolume models.ExpectedVolume `json:"expected_volume" validate:"required,expected_volume"`
	ClientIPHash   string                `json:"client_ip_hash" validate:"required"`
}

type PartnerLeadCreateResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type PartnerLeadListResponse struct {
	Leads []models.PartnerLead `json:"leads"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
