package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

// StartCleanup runs a daily goroutine that deletes system_logs older than
// retentionDays. Non-positive retention falls back to 30 days.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := purgeLogs(db, time.Now().UTC().AddDate(0, 0, -retentionDays))
				if err != nil {
					slog.Error("log cleanup failed", "component", "logging", "error", err.Error())
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "component", "logging", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

func purgeLogs(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
