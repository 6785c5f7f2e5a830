package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level    slog.Level
	err      error
	messages []string
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.messages = append(h.messages, record.Message)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestFanoutDeliversToAllLegs(t *testing.T) {
	stdout := &recordingHandler{level: slog.LevelInfo}
	store := &recordingHandler{level: slog.LevelError}
	log := slog.New(Fanout(stdout, store))

	log.Info("intake accepted")
	log.Error("store rejected report")

	assert.Equal(t, []string{"intake accepted", "store rejected report"}, stdout.messages)
	assert.Equal(t, []string{"store rejected report"}, store.messages)
}

func TestFanoutFailingLegDoesNotBlockOthers(t *testing.T) {
	storeErr := errors.New("connection refused")
	broken := &recordingHandler{level: slog.LevelInfo, err: storeErr}
	stdout := &recordingHandler{level: slog.LevelInfo}
	h := Fanout(broken, stdout)

	record := slog.NewRecord(time.Now(), slog.LevelError, "classifier panic", 0)
	err := h.Handle(context.Background(), record)

	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, []string{"classifier panic"}, stdout.messages)
}

func TestFanoutEnabledIfAnyLegIs(t *testing.T) {
	quiet := &recordingHandler{level: slog.LevelError}
	verbose := &recordingHandler{level: slog.LevelDebug}

	assert.False(t, Fanout(quiet).Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Fanout(quiet, verbose).Enabled(context.Background(), slog.LevelInfo))
}
