package logging

import (
	"log/slog"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/models"
	"gorm.io/gorm"
)

// logRetention bounds how long persisted error records stay queryable.
// Reports themselves are never pruned, only the system_logs trail.
const logRetention = 30 * 24 * time.Hour

// StartCleanup prunes expired system_logs once at startup and then
// daily, until done is closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		sweepExpiredLogs(db)
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweepExpiredLogs(db)
			case <-done:
				return
			}
		}
	}()
}

func sweepExpiredLogs(db *gorm.DB) {
	cutoff := time.Now().Add(-logRetention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
}
