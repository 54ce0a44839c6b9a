// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	applicationsfeature "github.com/dalemusser/mentorhub/internal/app/features/applications"
	auditlogfeature "github.com/dalemusser/mentorhub/internal/app/features/auditlog"
	authorcidfeature "github.com/dalemusser/mentorhub/internal/app/features/authorcid"
	chatfeature "github.com/dalemusser/mentorhub/internal/app/features/chat"
	healthfeature "github.com/dalemusser/mentorhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/mentorhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/mentorhub/internal/app/features/logout"
	matchingfeature "github.com/dalemusser/mentorhub/internal/app/features/matching"
	membersfeature "github.com/dalemusser/mentorhub/internal/app/features/members"
	profilefeature "github.com/dalemusser/mentorhub/internal/app/features/profile"
	auditstore "github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// MentorHub applies the session-loading middleware globally and mounts
// feature routers for authentication, applications, matching, chat,
// member administration, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Audit logger shared by features that record auth/admin events.
	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, audit, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(audit, logger)
	r.Mount("/auth/logout", logoutfeature.Routes(logoutHandler))

	orcidHandler := authorcidfeature.NewHandler(db, audit,
		appCfg.ORCIDClientID, appCfg.ORCIDClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/orcid", authorcidfeature.Routes(orcidHandler))

	// Profiles
	profileHandler := profilefeature.NewHandler(db, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Mentor/mentee applications and review
	applicationsHandler := applicationsfeature.NewHandler(db, audit, logger)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler))

	// Mentorship assignment
	matchingHandler := matchingfeature.NewHandler(db, audit, logger)
	r.Mount("/matching", matchingfeature.Routes(matchingHandler))

	// Pair chat
	chatHandler := chatfeature.NewHandler(db, logger)
	r.Mount("/chat", chatfeature.Routes(chatHandler))

	// Member administration
	membersHandler := membersfeature.NewHandler(db, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	// Audit event review
	auditHandler := auditlogfeature.NewHandler(db, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler))

	return r, nil
}
