// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config controls where each category of audit event goes.
// Values: "all" (MongoDB + zap), "db", "log", "off".
type Config struct {
	Auth  string
	Admin string
}

// Logger records audit events to MongoDB (via audit.Store) and to
// structured logs (via zap), per category configuration.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Matching events                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// MentorshipAssigned records a successful assignment.
func (l *Logger) MentorshipAssigned(ctx context.Context, r *http.Request, actorID, menteeID, mentorID primitive.ObjectID) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMentorshipAssigned,
		ActorID:   &actorID,
		UserID:    &menteeID,
		IP:        clientIP(r),
		Success:   true,
		Details:   map[string]string{"mentor_id": mentorID.Hex()},
	})
}

// MentorshipEnded records a termination with its reason.
func (l *Logger) MentorshipEnded(ctx context.Context, r *http.Request, actorID, menteeID, mentorID primitive.ObjectID, reason string) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMentorshipEnded,
		ActorID:   &actorID,
		UserID:    &menteeID,
		IP:        clientIP(r),
		Success:   true,
		Details:   map[string]string{"mentor_id": mentorID.Hex(), "reason": reason},
	})
}

// MentorshipReassigned records a move between mentors.
func (l *Logger) MentorshipReassigned(ctx context.Context, r *http.Request, actorID, menteeID, oldMentorID, newMentorID primitive.ObjectID) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventMentorshipReassigned,
		ActorID:   &actorID,
		UserID:    &menteeID,
		IP:        clientIP(r),
		Success:   true,
		Details: map[string]string{
			"old_mentor_id": oldMentorID.Hex(),
			"new_mentor_id": newMentorID.Hex(),
		},
	})
}

// ApplicationReviewed records a review decision.
func (l *Logger) ApplicationReviewed(ctx context.Context, r *http.Request, actorID, applicantID primitive.ObjectID, appType, decision string) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventApplicationReviewed,
		ActorID:   &actorID,
		UserID:    &applicantID,
		IP:        clientIP(r),
		Success:   true,
		Details:   map[string]string{"type": appType, "decision": decision},
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Auth events                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoginSuccess records a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, eventType string) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		UserID:    &userID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// LoginFailed records a failed sign-in attempt.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType, reason string) {
	l.record(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		IP:            clientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: reason,
	})
}

// Logout records a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.record(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    &userID,
		IP:        clientIP(r),
		Success:   true,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Plumbing                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (l *Logger) record(ctx context.Context, e audit.Event) {
	mode := l.config.Admin
	if e.Category == audit.CategoryAuth {
		mode = l.config.Auth
	}
	if mode == "off" {
		return
	}

	if mode == "all" || mode == "db" {
		if err := l.store.Insert(ctx, e); err != nil {
			l.zapLog.Error("audit event insert failed",
				zap.String("event_type", e.EventType), zap.Error(err))
		}
	}
	if mode == "all" || mode == "log" {
		l.logToZap(e)
	}
}

func (l *Logger) logToZap(e audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", e.Category),
		zap.String("event_type", e.EventType),
		zap.Bool("success", e.Success),
		zap.String("ip", e.IP),
	}
	if e.UserID != nil {
		fields = append(fields, zap.String("user_id", e.UserID.Hex()))
	}
	if e.ActorID != nil {
		fields = append(fields, zap.String("actor_id", e.ActorID.Hex()))
	}
	if e.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", e.FailureReason))
	}
	for k, v := range e.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if e.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// clientIP extracts the client IP (X-Forwarded-For → X-Real-IP → RemoteAddr).
func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}
