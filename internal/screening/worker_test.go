package screening

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type screenCall struct {
	origin    models.Origin
	abuseType models.AbuseType
	score     float64
	text      string
}

type fakeClassifier struct {
	verdict Verdict
	err     error
	calls   []screenCall
}

func (f *fakeClassifier) Model() string { return "test/screener-1" }

func (f *fakeClassifier) Screen(_ context.Context, origin models.Origin, abuseType models.AbuseType, score float64, text string) (Verdict, error) {
	f.calls = append(f.calls, screenCall{origin, abuseType, score, text})
	if f.err != nil {
		return Verdict{}, f.err
	}
	return f.verdict, nil
}

type fakeStore struct {
	reports  []models.Report
	updates  map[string]ScreeningUpdate
	gotLimit int
	listErr  error
}

func newFakeStore(reports ...models.Report) *fakeStore {
	return &fakeStore{reports: reports, updates: make(map[string]ScreeningUpdate)}
}

func (f *fakeStore) ListUnscreened(_ context.Context, limit int) ([]models.Report, error) {
	f.gotLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.reports) > limit {
		return f.reports[:limit], nil
	}
	return f.reports, nil
}

func (f *fakeStore) ApplyScreening(_ context.Context, reportID string, update ScreeningUpdate) error {
	f.updates[reportID] = update
	return nil
}

func unscreenedReport(bucket *models.SeverityBucket, score *float64) models.Report {
	return models.Report{
		ID:                 uuid.New(),
		Origin:             models.OriginAPIAgent,
		ReceivedAt:         time.Now().UTC(),
		AbuseType:          models.AbuseHarassment,
		AgentSeverityScore: score,
		FinalSeverityScore: 0.5,
		TranscriptSnippet:  "snippet",
		SpamStatus:         models.SpamUnscreened,
		SeverityBucket:     bucket,
	}
}

func TestProcessBatchAppliesVerdict(t *testing.T) {
	score := 0.3
	report := unscreenedReport(nil, &score)
	store := newFakeStore(report)
	cls := &fakeClassifier{verdict: Verdict{models.SpamNot, models.SignalDistress, models.SeverityHigh}}

	w := NewWorker(store, cls, time.Minute, 20)
	count, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	update, ok := store.updates[report.ID.String()]
	require.True(t, ok)
	assert.Equal(t, models.SpamNot, update.SpamStatus)
	require.NotNil(t, update.SignalLabel)
	assert.Equal(t, models.SignalDistress, *update.SignalLabel)
	require.NotNil(t, update.SeverityBucket)
	assert.Equal(t, models.SeverityHigh, *update.SeverityBucket)
	require.NotNil(t, update.FilterModel)
	assert.Equal(t, "test/screener-1", *update.FilterModel)
}

func TestProcessBatchNeverOverwritesBucket(t *testing.T) {
	high := models.SeverityHigh
	report := unscreenedReport(&high, nil)
	store := newFakeStore(report)
	cls := &fakeClassifier{verdict: Verdict{models.SpamNot, models.SignalLowSignal, models.SeverityLow}}

	w := NewWorker(store, cls, time.Minute, 20)
	_, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)

	update := store.updates[report.ID.String()]
	// Spam status and signal label follow the verdict; the bucket
	// assigned at intake is left alone.
	assert.Equal(t, models.SpamNot, update.SpamStatus)
	require.NotNil(t, update.SignalLabel)
	assert.Equal(t, models.SignalLowSignal, *update.SignalLabel)
	assert.Nil(t, update.SeverityBucket)
}

func TestProcessBatchFailureDowngradesOnly(t *testing.T) {
	reports := []models.Report{
		unscreenedReport(nil, nil),
		unscreenedReport(nil, nil),
		unscreenedReport(nil, nil),
	}
	store := newFakeStore(reports...)
	cls := &fakeClassifier{err: errors.New("upstream down")}

	w := NewWorker(store, cls, time.Minute, 20)
	count, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, report := range reports {
		update, ok := store.updates[report.ID.String()]
		require.True(t, ok, "report %s was not downgraded", report.ID)
		assert.Equal(t, models.SpamMaybe, update.SpamStatus)
		assert.Nil(t, update.SignalLabel)
		assert.Nil(t, update.SeverityBucket)
		assert.Nil(t, update.FilterModel)
	}
}

func TestProcessBatchUsesConfiguredBatchSize(t *testing.T) {
	store := newFakeStore()
	w := NewWorker(store, &fakeClassifier{}, time.Minute, 7)
	count, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 7, store.gotLimit)
}

func TestProcessBatchDefaultsMissingScore(t *testing.T) {
	report := unscreenedReport(nil, nil)
	store := newFakeStore(report)
	cls := &fakeClassifier{verdict: Verdict{models.SpamNot, models.SignalDistress, models.SeverityLow}}

	w := NewWorker(store, cls, time.Minute, 20)
	_, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, cls.calls, 1)
	assert.InDelta(t, 0.5, cls.calls[0].score, 1e-9)
	assert.Equal(t, models.OriginAPIAgent, cls.calls[0].origin)
	assert.Equal(t, models.AbuseHarassment, cls.calls[0].abuseType)
	assert.Equal(t, "snippet", cls.calls[0].text)
}

func TestProcessBatchListFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("db gone")

	w := NewWorker(store, &fakeClassifier{}, time.Minute, 20)
	count, err := w.ProcessBatch(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, count)
}

type signalStore struct {
	polled chan struct{}
}

func (s *signalStore) ListUnscreened(_ context.Context, _ int) ([]models.Report, error) {
	select {
	case s.polled <- struct{}{}:
	default:
	}
	return nil, nil
}

func (s *signalStore) ApplyScreening(_ context.Context, _ string, _ ScreeningUpdate) error {
	return nil
}

func TestWorkerStartAndStop(t *testing.T) {
	store := &signalStore{polled: make(chan struct{}, 1)}
	w := NewWorker(store, &fakeClassifier{}, 10*time.Millisecond, 5)
	w.Start()

	select {
	case <-store.polled:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never polled the store")
	}
	w.Stop()
}
