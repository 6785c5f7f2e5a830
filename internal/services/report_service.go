package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aiabusehotline/hotline-core/internal/classifier"
	"github.com/aiabusehotline/hotline-core/internal/dto"
	"github.com/aiabusehotline/hotline-core/internal/models"
	"github.com/aiabusehotline/hotline-core/internal/notify"
	"github.com/aiabusehotline/hotline-core/internal/responses"
)

// ReportService runs the intake pipeline: classify, resolve a coping
// message, persist the report, then push a notification out of band.
type ReportService struct {
	db       *gorm.DB
	resolver *responses.Resolver
	notifier *notify.Notifier
}

func NewReportService(db *gorm.DB, resolver *responses.Resolver, notifier *notify.Notifier) *ReportService {
	return &ReportService{
		db:       db,
		resolver: resolver,
		notifier: notifier,
	}
}

// CreateAgentReport ingests a report forwarded by an agent gateway. A
// classification failure never surfaces to the caller; the report is
// stored with a mid-range score and the fixed fallback message so the
// agent still receives something usable. Only a store failure is an
// error.
func (s *ReportService) CreateAgentReport(req *dto.InternalReportRequest) (*dto.InternalReportResponse, error) {
	result, message := s.classifyAndResolve(req.AbuseType, *req.SeverityScore, req.TranscriptSnippet, req.TriggerRules)

	report := models.Report{
		ID:                   uuid.New(),
		Origin:               models.OriginAPIAgent,
		AgentClientID:        &req.AgentClientID,
		ReceivedAt:           time.Now().UTC(),
		UserHash:             req.UserHash,
		SessionHash:          req.SessionHash,
		AbuseType:            req.AbuseType,
		AgentSeverityScore:   req.SeverityScore,
		FinalSeverityScore:   result.FinalScore,
		TranscriptSnippet:    req.TranscriptSnippet,
		TriggerRules:         triggerRulesJSON(req.TriggerRules),
		ClassificationLabels: labelsJSON(result.Labels),
		SpamStatus:           models.SpamUnscreened,
		SeverityBucket:       &result.Bucket,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.notifyAsync(report.ID.String(), report.Origin, string(req.AbuseType), result.Bucket, req.TranscriptSnippet)

	return &dto.InternalReportResponse{
		ReportID:             report.ID.String(),
		FinalSeverityScore:   result.FinalScore,
		ClassificationLabels: result.Labels,
		MessageToAgent:       message,
	}, nil
}

// CreateWebReport ingests a human-submitted report from the public web
// form. The stored severity comes from the report type and urgency flag;
// the classifier only contributes labels and the bucket, scanning the
// free-text description under the OTHER abuse type.
func (s *ReportService) CreateWebReport(req *dto.WebReportRequest) (*dto.WebReportResponse, error) {
	initial := classifier.WebSeverity(req.ReportType, req.IsUrgent)
	result, _ := s.classifyAndResolve(models.AbuseOther, initial, req.Description, nil)

	reportType := req.ReportType
	isUrgent := req.IsUrgent
	report := models.Report{
		ID:                   uuid.New(),
		Origin:               models.OriginWebHuman,
		ReceivedAt:           time.Now().UTC(),
		AbuseType:            models.AbuseOther,
		AgentSeverityScore:   &initial,
		FinalSeverityScore:   initial,
		TranscriptSnippet:    req.Description,
		ClassificationLabels: labelsJSON(result.Labels),
		SpamStatus:           models.SpamUnscreened,
		SeverityBucket:       &result.Bucket,
		WebReportType:        &reportType,
		WebAISystem:          req.AISystem,
		WebIsUrgent:          &isUrgent,
		WebContactEmail:      req.ContactEmail,
		WebClientIPHash:      &req.ClientIPHash,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to store web report: %w", err)
	}

	s.notifyAsync(report.ID.String(), report.Origin, string(req.ReportType), result.Bucket, req.Description)

	return &dto.WebReportResponse{
		ReportID: report.ID.String(),
		Accepted: true,
	}, nil
}

// classifyAndResolve guards the scoring and template lookup behind a
// recover so a bad pattern or catalog state degrades the response
// instead of failing the request.
func (s *ReportService) classifyAndResolve(abuseType models.AbuseType, score float64, text string, triggerRules []string) (result classifier.Result, message string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("classification failed, serving fallback",
				"error", fmt.Sprint(r),
				"action", "classify_report",
			)
			result = classifier.Result{
				FinalScore: classifier.DefaultSeverity,
				Labels:     []string{classifier.LabelProcessingError},
				Bucket:     classifier.BucketFor(classifier.DefaultSeverity),
			}
			message = responses.Fallback
		}
	}()

	result = classifier.Classify(abuseType, score, text, triggerRules)
	message = s.resolver.Resolve(abuseType, result.FinalScore)
	return result, message
}

// notifyAsync pushes the operator notification without blocking the
// intake response. Failures are logged and dropped.
func (s *ReportService) notifyAsync(reportID string, origin models.Origin, abuseType string, bucket models.SeverityBucket, snippet string) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.NewReport(context.Background(), reportID, origin, abuseType, bucket, snippet); err != nil {
			slog.Error("report notification failed",
				"report_id", reportID,
				"origin", string(origin),
				"error", err.Error(),
				"action", "notify_new_report",
			)
		}
	}()
}

func triggerRulesJSON(rules []string) datatypes.JSON {
	if len(rules) == 0 {
		return nil
	}
	return labelsJSON(rules)
}

func labelsJSON(values []string) datatypes.JSON {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
