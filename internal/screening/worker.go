package screening

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/classifier"
	"github.com/aiabusehotline/hotline-core/internal/models"
)

// Worker is the background screening loop. It wakes on a fixed
// interval, drains one batch of UNSCREENED reports, and checks for
// shutdown between cycles, never mid-batch.
type Worker struct {
	store      Store
	classifier Classifier
	interval   time.Duration
	batchSize  int
	done       chan struct{}
}

func NewWorker(store Store, classifier Classifier, interval time.Duration, batchSize int) *Worker {
	return &Worker{
		store:      store,
		classifier: classifier,
		interval:   interval,
		batchSize:  batchSize,
		done:       make(chan struct{}),
	}
}

// Start launches the loop in its own goroutine.
func (w *Worker) Start() {
	go w.run()
}

// Stop signals the loop to exit. An in-flight batch finishes first.
func (w *Worker) Stop() {
	close(w.done)
}

func (w *Worker) run() {
	slog.Info("screening worker started",
		"interval", w.interval.String(),
		"batch_size", w.batchSize,
		"model", w.classifier.Model(),
	)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			count, err := w.ProcessBatch(context.Background())
			if err != nil {
				slog.Error("screening cycle failed", "error", err.Error(), "action", "screening_cycle")
			} else if count > 0 {
				slog.Info("screened reports", "count", count)
			}
		case <-w.done:
			slog.Info("screening worker stopped")
			return
		}
	}
}

// ProcessBatch drains one batch of unscreened reports and returns how
// many it handled. Per-report failures downgrade that report to
// MAYBE_SPAM and never abort the batch; only a store-level read
// failure surfaces as an error.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	reports, err := w.store.ListUnscreened(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unscreened reports: %w", err)
	}

	for _, report := range reports {
		w.screenOne(ctx, report)
	}
	return len(reports), nil
}

func (w *Worker) screenOne(ctx context.Context, report models.Report) {
	score := classifier.DefaultSeverity
	if report.AgentSeverityScore != nil {
		score = *report.AgentSeverityScore
	}

	verdict, err := w.classifier.Screen(ctx, report.Origin, report.AbuseType, score, report.TranscriptSnippet)
	if err != nil {
		slog.Error("screening call failed",
			"report_id", report.ID.String(),
			"origin", string(report.Origin),
			"error", err.Error(),
			"action", "screen_report",
		)
		// One-shot downgrade: the report leaves the queue for manual
		// review instead of being retried forever.
		if err := w.store.ApplyScreening(ctx, report.ID.String(), ScreeningUpdate{SpamStatus: models.SpamMaybe}); err != nil {
			slog.Error("screening downgrade failed", "report_id", report.ID.String(), "error", err.Error())
		}
		return
	}

	model := w.classifier.Model()
	update := ScreeningUpdate{
		SpamStatus:  verdict.SpamStatus,
		SignalLabel: &verdict.SignalLabel,
		FilterModel: &model,
	}
	if report.SeverityBucket == nil {
		update.SeverityBucket = &verdict.SeverityBucket
	}
	if err := w.store.ApplyScreening(ctx, report.ID.String(), update); err != nil {
		slog.Error("screening update failed", "report_id", report.ID.String(), "error", err.Error())
	}
}
