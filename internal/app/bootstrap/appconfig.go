// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is where everything specific to MentorHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: mentorhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks
	BaseURL string // e.g., "https://mentorhub.example.org" or "http://localhost:3000"

	// ORCID OAuth configuration
	ORCIDClientID     string
	ORCIDClientSecret string

	// Audit logging settings ("all", "db", "log", "off")
	AuditLogAuth  string
	AuditLogAdmin string

	// AuditRetentionDays bounds the audit collection; 0 keeps events forever.
	AuditRetentionDays int

	// Admin bootstrap: promotes/creates this account on startup
	AdminEmail string
}
