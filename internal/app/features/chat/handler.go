// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"encoding/json"
	"net/http"

	chatstore "github.com/dalemusser/mentorhub/internal/app/store/chat"
	matchstore "github.com/dalemusser/mentorhub/internal/app/store/matches"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the per-pair message log. Access is limited to the two
// members of an active pair and admins; the pair check verifies both
// directions of the mentor-mentee link, so conversations on half-written
// pairs are unreachable.
type Handler struct {
	DB       *mongo.Database
	Messages *chatstore.Store
	Matches  *matchstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Messages: chatstore.New(db),
		Matches:  matchstore.New(db, logger),
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

// authorizePair checks that the caller may access the (mentor, mentee)
// conversation: they are one of its members or an admin, and the pair is
// active in both directions.
func (h *Handler) authorizePair(ctx context.Context, r *http.Request, mentorID, menteeID primitive.ObjectID) (int, string) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return http.StatusUnauthorized, "unauthorized"
	}
	if userID != mentorID && userID != menteeID && !authz.IsAdmin(r) {
		return http.StatusForbidden, "you are not part of this mentorship"
	}

	active, err := h.Matches.IsActivePair(ctx, menteeID, mentorID)
	if err != nil {
		h.Log.Error("pair check failed", zap.Error(err))
		return http.StatusInternalServerError, "operation failed; please try again"
	}
	if !active {
		return http.StatusNotFound, "no active mentorship between these users"
	}
	return 0, ""
}
