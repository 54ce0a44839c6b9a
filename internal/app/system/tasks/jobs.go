// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/store/oauthstate"
	"go.uber.org/zap"
)

// OAuthStateCleanupJob creates a job that removes expired OAuth state tokens.
// This is a backup for when MongoDB's TTL index cleanup is delayed.
func OAuthStateCleanupJob(stateStore *oauthstate.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "oauth-state-cleanup",
		Interval: 10 * time.Minute,
		Run: func(ctx context.Context) error {
			count, err := stateStore.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("purged expired oauth states", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// AuditRetentionJob creates a job that deletes audit events older than the
// retention window. A retention of zero disables the job's work.
func AuditRetentionJob(events *auditstore.Store, logger *zap.Logger, retention time.Duration) Job {
	return Job{
		Name:     "audit-retention",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			if retention <= 0 {
				return nil
			}
			cutoff := time.Now().UTC().Add(-retention)
			count, err := events.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("deleted expired audit events",
					zap.Int64("count", count),
					zap.Time("cutoff", cutoff))
			}
			return nil
		},
	}
}
