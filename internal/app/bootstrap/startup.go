// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/tasks"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// jobRunner holds the background job runner between Startup and Shutdown.
var jobRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// initializes the session store and promotes/creates the bootstrap admin
// account when one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		return err
	}

	if appCfg.AdminEmail != "" {
		adminCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()

		if err := userstore.New(deps.MongoDatabase).EnsureAdmin(adminCtx, appCfg.AdminEmail); err != nil {
			return err
		}
		logger.Info("admin account ensured", zap.String("email", appCfg.AdminEmail))
	}

	jobRunner = tasks.NewRunner(logger,
		tasks.OAuthStateCleanupJob(oauthstate.New(deps.MongoDatabase), logger),
		tasks.AuditRetentionJob(auditstore.New(deps.MongoDatabase), logger,
			time.Duration(appCfg.AuditRetentionDays)*24*time.Hour),
	)
	jobRunner.Start()

	return nil
}
