// internal/app/features/matching/handler.go
package matching

import (
	"encoding/json"
	"errors"
	"net/http"

	matchstore "github.com/dalemusser/mentorhub/internal/app/store/matches"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler exposes the matching engine to the admin SPA as a JSON API.
// Every response carries the uniform {ok, error?} shape the frontend
// surfaces as a notification.
type Handler struct {
	DB       *mongo.Database
	Matches  *matchstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Matches:  matchstore.New(db, logger),
		AuditLog: audit,
		Log:      logger,
	}
}

// result is the uniform envelope for every matching response.
type result struct {
	Ok    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result{Ok: true, Data: data})
}

// writeErr maps engine sentinel errors to statuses and hides internal
// failures behind a generic message. Every failure path surfaces a short,
// human-readable string; nothing is silently swallowed or retried.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "operation failed; please try again"

	switch {
	case errors.Is(err, matchstore.ErrCapacityExceeded),
		errors.Is(err, matchstore.ErrAlreadyAssigned),
		errors.Is(err, matchstore.ErrAssignedElsewhere):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, matchstore.ErrMentorNotFound),
		errors.Is(err, matchstore.ErrMenteeNotFound),
		errors.Is(err, matchstore.ErrHistoryNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	default:
		h.Log.Error("matching operation failed", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result{Ok: false, Error: msg})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(result{Ok: false, Error: msg})
}
