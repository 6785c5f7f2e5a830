package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aiabusehotline/hotline-core/internal/dto"
	"github.com/aiabusehotline/hotline-core/internal/models"
)

var ErrAgentClientNotFound = errors.New("agent client not found")

const (
	defaultReportLimit = 50
	maxReportLimit     = 500
)

// AdminService backs the operator API: dashboard stats, report
// browsing, agent client provisioning and partner lead capture.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ReportFilter narrows ListReports. Zero values mean "any"; Limit is
// clamped to [1, 500] with a default of 50.
type ReportFilter struct {
	Origin         models.Origin
	SpamStatus     models.SpamStatus
	SeverityBucket models.SeverityBucket
	Limit          int
	Offset         int
}

func (f *ReportFilter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultReportLimit
	}
	if f.Limit > maxReportLimit {
		f.Limit = maxReportLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// StatsSummary aggregates the dashboard counters in one pass per
// counter. Each count runs against the live table, so totals may skew
// slightly under concurrent writes.
func (s *AdminService) StatsSummary() (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}
	counters := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalReports, nil},
		{&stats.APIReports, models.WithOrigin(models.OriginAPIAgent)},
		{&stats.WebReports, models.WithOrigin(models.OriginWebHuman)},
		{&stats.SpamCount, models.WithSpamStatus(models.SpamConfirmed)},
		{&stats.NotSpamCount, models.WithSpamStatus(models.SpamNot)},
		{&stats.UnscreenedCount, models.WithSpamStatus(models.SpamUnscreened)},
		{&stats.HighSeverityCount, models.WithSeverityBucket(models.SeverityHigh)},
		{&stats.MediumSeverityCount, models.WithSeverityBucket(models.SeverityMedium)},
		{&stats.LowSeverityCount, models.WithSeverityBucket(models.SeverityLow)},
	}
	for _, c := range counters {
		query := s.db.Model(&models.Report{})
		if c.scope != nil {
			query = query.Scopes(c.scope)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to aggregate stats: %w", err)
		}
	}
	return stats, nil
}

// ListReports returns stored reports newest first, filtered by any
// combination of origin, spam status and severity bucket.
func (s *AdminService) ListReports(filter ReportFilter) ([]models.Report, error) {
	filter.normalize()

	var reports []models.Report
	err := s.db.
		Scopes(
			models.WithOrigin(filter.Origin),
			models.WithSpamStatus(filter.SpamStatus),
			models.WithSeverityBucket(filter.SeverityBucket),
		).
		Order("received_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (s *AdminService) ListAgentClients() ([]dto.AgentClientResponse, error) {
	var clients []models.AgentClient
	if err := s.db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list agent clients: %w", err)
	}

	out := make([]dto.AgentClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.AgentClientResponse{
			ID:        c.ID.String(),
			Name:      c.Name,
			Vendor:    c.Vendor,
			Active:    c.Active,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

// CreateAgentClient provisions a new API consumer. The response carries
// the plaintext key; only its SHA-256 digest is persisted, so the key
// cannot be recovered later.
func (s *AdminService) CreateAgentClient(req *dto.AgentClientCreateRequest) (*dto.AgentClientCreateResponse, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}
	apiKey := base64.URLEncoding.EncodeToString(rawBytes)

	client := models.AgentClient{
		ID:         uuid.New(),
		Name:       req.Name,
		Vendor:     req.Vendor,
		APIKeyHash: hashAPIKey(apiKey),
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create agent client: %w", err)
	}

	return &dto.AgentClientCreateResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		Vendor:    client.Vendor,
		APIKey:    apiKey,
		CreatedAt: client.CreatedAt,
	}, nil
}

// FindAgentClientByKeyHash resolves an API key digest to its client.
// The gateway hashes the presented key itself; the plaintext never
// reaches this service.
func (s *AdminService) FindAgentClientByKeyHash(keyHash string) (*dto.AgentKeyLookupResponse, error) {
	var client models.AgentClient
	err := s.db.Where("api_key_hash = ?", keyHash).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAgentClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up agent client: %w", err)
	}

	return &dto.AgentKeyLookupResponse{
		ID:     client.ID.String(),
		Name:   client.Name,
		Vendor: client.Vendor,
		Active: client.Active,
	}, nil
}

// AgentClientStats breaks one client's reports down by severity bucket
// and abuse type. Unknown client IDs yield zeroes rather than an error.
func (s *AdminService) AgentClientStats(clientID string) (*dto.AgentStatsResponse, error) {
	stats := &dto.AgentStatsResponse{
		ClientID:    clientID,
		BySeverity:  map[string]int64{},
		ByAbuseType: map[string]int64{},
	}

	err := s.db.Model(&models.Report{}).
		Scopes(models.ForAgentClient(clientID)).
		Count(&stats.TotalReports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count agent reports: %w", err)
	}

	if err := s.groupCount(clientID, "severity_bucket", stats.BySeverity); err != nil {
		return nil, err
	}
	if err := s.groupCount(clientID, "abuse_type", stats.ByAbuseType); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *AdminService) groupCount(clientID, column string, dest map[string]int64) error {
	var rows []struct {
		Label *string
		Count int64
	}
	err := s.db.Model(&models.Report{}).
		Select(column+" AS label, COUNT(*) AS count").
		Scopes(models.ForAgentClient(clientID)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to group reports by %s: %w", column, err)
	}

	for _, row := range rows {
		label := "UNKNOWN"
		if row.Label != nil {
			label = *row.Label
		}
		dest[label] = row.Count
	}
	return nil
}

func (s *AdminService) CreatePartnerLead(req *dto.PartnerLeadRequest) (*dto.PartnerLeadCreateResponse, error) {
	lead := models.PartnerLead{
		ID:             uuid.New(),
		OrgName:        req.OrgName,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		Description:    req.Description,
		ExpectedVolume: req.ExpectedVolume,
		ClientIPHash:   req.ClientIPHash,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.db.Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create partner lead: %w", err)
	}

	return &dto.PartnerLeadCreateResponse{
		ID:        lead.ID.String(),
		CreatedAt: lead.CreatedAt,
	}, nil
}

func (s *AdminService) ListPartnerLeads() ([]models.PartnerLead, error) {
	var leads []models.PartnerLead
	if err := s.db.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list partner leads: %w", err)
	}
	return leads, nil
}

func hashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}
