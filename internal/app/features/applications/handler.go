// internal/app/features/applications/handler.go
package applications

import (
	"encoding/json"
	"errors"
	"net/http"

	applicationstore "github.com/dalemusser/mentorhub/internal/app/store/applications"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves mentorship application submission and admin review.
type Handler struct {
	DB       *mongo.Database
	Apps     *applicationstore.Store
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Apps:     applicationstore.New(db),
		AuditLog: audit,
		Log:      logger,
	}
}

type result struct {
	Ok    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result{Ok: true, Data: data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result{Ok: false, Error: msg})
}

func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, applicationstore.ErrNotFound):
		writeFail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, applicationstore.ErrDuplicateApplication):
		writeFail(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("application operation failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
	}
}
