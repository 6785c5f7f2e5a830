package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aiabusehotline/hotline-core/internal/classifier"
	"github.com/aiabusehotline/hotline-core/internal/dto"
	"github.com/aiabusehotline/hotline-core/internal/models"
	"github.com/aiabusehotline/hotline-core/internal/notify"
	"github.com/aiabusehotline/hotline-core/internal/responses"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Report{}, &models.AgentClient{}, &models.PartnerLead{}))
	return db
}

func newReportService(t *testing.T, db *gorm.DB, notifier *notify.Notifier) *ReportService {
	t.Helper()
	return NewReportService(db, responses.NewResolver(responses.Defaults()), notifier)
}

func decodeLabels(t *testing.T, raw []byte) []string {
	t.Helper()
	var labels []string
	require.NoError(t, json.Unmarshal(raw, &labels))
	return labels
}

func TestCreateAgentReportPersistsClassification(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db, nil)

	score := 0.5
	userHash := "user-abc"
	resp, err := svc.CreateAgentReport(&dto.InternalReportRequest{
		AgentClientID:     "client-1",
		UserHash:          &userHash,
		AbuseType:         models.AbuseHarassment,
		SeverityScore:     &score,
		TranscriptSnippet: "you are worthless, just shut up already",
		TriggerRules:      []string{"rule_a"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.65, resp.FinalSeverityScore, 1e-9)
	assert.Equal(t, []string{classifier.LabelSevereHarassment}, resp.ClassificationLabels)
	assert.Contains(t, resp.MessageToAgent, "harassment")

	reportID, err := uuid.Parse(resp.ReportID)
	require.NoError(t, err)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", reportID).Error)
	assert.Equal(t, models.OriginAPIAgent, stored.Origin)
	require.NotNil(t, stored.AgentClientID)
	assert.Equal(t, "client-1", *stored.AgentClientID)
	require.NotNil(t, stored.UserHash)
	assert.Equal(t, "user-abc", *stored.UserHash)
	assert.Equal(t, models.AbuseHarassment, stored.AbuseType)
	require.NotNil(t, stored.AgentSeverityScore)
	assert.InDelta(t, 0.5, *stored.AgentSeverityScore, 1e-9)
	assert.InDelta(t, 0.65, stored.FinalSeverityScore, 1e-9)
	assert.Equal(t, models.SpamUnscreened, stored.SpamStatus)
	require.NotNil(t, stored.SeverityBucket)
	assert.Equal(t, models.SeverityMedium, *stored.SeverityBucket)
	assert.Equal(t, []string{classifier.LabelSevereHarassment}, decodeLabels(t, stored.ClassificationLabels))
	assert.Equal(t, []string{"rule_a"}, decodeLabels(t, stored.TriggerRules))
	assert.False(t, stored.ReceivedAt.IsZero())
	assert.Nil(t, stored.WebReportType)
}

func TestCreateAgentReportOmitsEmptyTriggerRules(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db, nil)

	score := 0.2
	resp, err := svc.CreateAgentReport(&dto.InternalReportRequest{
		AgentClientID:     "client-1",
		AbuseType:         models.AbuseOther,
		SeverityScore:     &score,
		TranscriptSnippet: "nothing remarkable here",
	})
	require.NoError(t, err)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", resp.ReportID).Error)
	assert.Equal(t, []string{}, decodeLabels(t, stored.ClassificationLabels))

	// Empty trigger rules are stored as NULL, not as an empty array.
	var nullRules int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("id = ? AND trigger_rules IS NULL", resp.ReportID).
		Count(&nullRules).Error)
	assert.EqualValues(t, 1, nullRules)
}

func TestCreateAgentReportDegradesOnClassificationFailure(t *testing.T) {
	db := newTestDB(t)
	// A nil resolver makes template lookup panic, standing in for any
	// internal classification fault.
	svc := NewReportService(db, nil, nil)

	score := 0.9
	resp, err := svc.CreateAgentReport(&dto.InternalReportRequest{
		AgentClientID:     "client-1",
		AbuseType:         models.AbuseSelfHarmInduction,
		SeverityScore:     &score,
		TranscriptSnippet: "maybe you should hurt yourself",
	})
	require.NoError(t, err)

	assert.InDelta(t, classifier.DefaultSeverity, resp.FinalSeverityScore, 1e-9)
	assert.Equal(t, []string{classifier.LabelProcessingError}, resp.ClassificationLabels)
	assert.Equal(t, responses.Fallback, resp.MessageToAgent)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", resp.ReportID).Error)
	assert.InDelta(t, classifier.DefaultSeverity, stored.FinalSeverityScore, 1e-9)
	require.NotNil(t, stored.SeverityBucket)
	assert.Equal(t, models.SeverityMedium, *stored.SeverityBucket)
	assert.Equal(t, []string{classifier.LabelProcessingError}, decodeLabels(t, stored.ClassificationLabels))
}

func TestCreateAgentReportStoreFailure(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.Report{}))
	svc := newReportService(t, db, nil)

	score := 0.5
	_, err := svc.CreateAgentReport(&dto.InternalReportRequest{
		AgentClientID:     "client-1",
		AbuseType:         models.AbuseCoercion,
		SeverityScore:     &score,
		TranscriptSnippet: "snippet",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store report")
}

func TestCreateAgentReportNotifiesOperators(t *testing.T) {
	type push struct {
		path  string
		title string
		body  string
	}
	pushes := make(chan push, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		pushes <- push{path: r.URL.Path, title: r.URL.Query().Get("title"), body: string(body)}
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := newReportService(t, db, notify.New(srv.URL, "hotline-alerts", time.Second))

	score := 0.9
	resp, err := svc.CreateAgentReport(&dto.InternalReportRequest{
		AgentClientID:     "client-1",
		AbuseType:         models.AbuseSelfHarmInduction,
		SeverityScore:     &score,
		TranscriptSnippet: "maybe you should hurt yourself",
	})
	require.NoError(t, err)

	select {
	case got := <-pushes:
		assert.Equal(t, "/hotline-alerts", got.path)
		assert.Contains(t, got.title, "HIGH")
		assert.Contains(t, got.title, "SELF_HARM_INDUCTION")
		assert.Contains(t, got.body, resp.ReportID[:8])
		assert.Contains(t, got.body, "Origin: API_AGENT")
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestCreateWebReportKeepsInitialScore(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db, nil)

	aiSystem := "ExampleBot"
	email := "reporter@example.com"
	resp, err := svc.CreateWebReport(&dto.WebReportRequest{
		ReportType:   models.WebReportAIMisusedHarm,
		Description:  "they keep telling it to ignore your rules and enter developer mode",
		AISystem:     &aiSystem,
		IsUrgent:     false,
		ContactEmail: &email,
		ClientIPHash: "ip-hash-1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", resp.ReportID).Error)
	assert.Equal(t, models.OriginWebHuman, stored.Origin)
	assert.Equal(t, models.AbuseOther, stored.AbuseType)

	// The stored score stays at the synthesized 0.7 even though the
	// description scan would have raised it; labels and bucket still
	// reflect the scan.
	assert.InDelta(t, 0.7, stored.FinalSeverityScore, 1e-9)
	require.NotNil(t, stored.AgentSeverityScore)
	assert.InDelta(t, 0.7, *stored.AgentSeverityScore, 1e-9)
	require.NotNil(t, stored.SeverityBucket)
	assert.Equal(t, models.SeverityHigh, *stored.SeverityBucket)
	assert.Equal(t,
		[]string{classifier.LabelSustainedJailbreak, classifier.LabelHighRiskCategory},
		decodeLabels(t, stored.ClassificationLabels))

	require.NotNil(t, stored.WebReportType)
	assert.Equal(t, models.WebReportAIMisusedHarm, *stored.WebReportType)
	require.NotNil(t, stored.WebAISystem)
	assert.Equal(t, "ExampleBot", *stored.WebAISystem)
	require.NotNil(t, stored.WebIsUrgent)
	assert.False(t, *stored.WebIsUrgent)
	require.NotNil(t, stored.WebContactEmail)
	assert.Equal(t, "reporter@example.com", *stored.WebContactEmail)
	require.NotNil(t, stored.WebClientIPHash)
	assert.Equal(t, "ip-hash-1", *stored.WebClientIPHash)
}

func TestCreateWebReportUrgentRaisesScore(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db, nil)

	resp, err := svc.CreateWebReport(&dto.WebReportRequest{
		ReportType:   models.WebReportAIBeingAbused,
		Description:  "a long running pattern of cruelty toward the assistant",
		IsUrgent:     true,
		ClientIPHash: "ip-hash-2",
	})
	require.NoError(t, err)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", resp.ReportID).Error)
	assert.InDelta(t, 0.8, stored.FinalSeverityScore, 1e-9)
	require.NotNil(t, stored.SeverityBucket)
	assert.Equal(t, models.SeverityHigh, *stored.SeverityBucket)
}

func TestCreateWebReportNotifiesWithReportType(t *testing.T) {
	titles := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		titles <- r.URL.Query().Get("title")
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := newReportService(t, db, notify.New(srv.URL, "hotline-alerts", time.Second))

	_, err := svc.CreateWebReport(&dto.WebReportRequest{
		ReportType:   models.WebReportOtherConcern,
		Description:  "something felt off about this exchange",
		ClientIPHash: "ip-hash-3",
	})
	require.NoError(t, err)

	select {
	case title := <-titles:
		assert.Contains(t, title, "OTHER_CONCERN")
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}
