// Package logging wires the hotline's two-stage slog setup: JSON to
// stdout from process start, upgraded after the database connects to a
// fan-out that also batches ERROR+ records into the system_logs table
// so classifier and notification failures survive restarts.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON logger. Runs before the database is
// available; main swaps in the fan-out handler once it is.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler returns the plain JSON handler used both at boot and as
// the first leg of the post-connect fan-out.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
}
