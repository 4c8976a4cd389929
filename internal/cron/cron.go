package cron

import (
	"context"
	"log"
	"time"

	"github.com/linskybing/formflow/internal/application"
)

// cleanupInterval is how often old audit logs are pruned.
var cleanupInterval = 24 * time.Hour

// StartCleanupTask prunes audit logs older than retentionDays now and then
// once per cleanupInterval until ctx is done. A non-positive retention
// disables the task.
func StartCleanupTask(ctx context.Context, auditService *application.AuditService, retentionDays int) {
	if retentionDays <= 0 {
		log.Println("Audit log cleanup disabled")
		return
	}

	go func() {
		log.Printf("Starting background cleanup task (retention: %d days)", retentionDays)

		// Run immediately on startup
		runCleanup(ctx, auditService, retentionDays)

		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Println("Running scheduled audit log cleanup...")
				runCleanup(ctx, auditService, retentionDays)
			}
		}
	}()
}

func runCleanup(ctx context.Context, auditService *application.AuditService, retentionDays int) int64 {
	n, err := auditService.CleanupOldLogs(ctx, retentionDays)
	if err != nil {
		log.Printf("Failed to cleanup old audit logs: %v", err)
		return 0
	}
	log.Printf("Audit log cleanup completed, %d entries removed", n)
	return n
}
