// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	historystore "github.com/dalemusser/mentorhub/internal/app/store/history"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/limits"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile and mentorship history.
type Handler struct {
	Users   *userstore.Store
	History *historystore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		History: historystore.New(db),
		Log:     logger,
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

// ServeProfile returns the caller's user record. Mounted on GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeFail(w, http.StatusNotFound, "profile not found")
			return
		}
		h.Log.Error("profile load failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	writeOK(w, u)
}

type updateRequest struct {
	FullName    string `json:"full_name"`
	Affiliation string `json:"affiliation"`
	Bio         string `json:"bio"`
}

// HandleUpdate updates the caller's profile fields. Mounted on POST /profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" {
		writeFail(w, http.StatusBadRequest, "full name is required")
		return
	}
	bio := htmlsanitize.Sanitize(req.Bio)
	if len(bio) > limits.MaxBioLen {
		writeFail(w, http.StatusBadRequest, "bio is too long")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, userID, userstore.ProfileUpdate{
		FullName:    req.FullName,
		Affiliation: req.Affiliation,
		Bio:         bio,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeFail(w, http.StatusNotFound, "profile not found")
			return
		}
		h.Log.Error("profile update failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	writeOK(w, nil)
}

// ServeHistory returns the caller's mentorship history from both sides:
// entries where they served as mentor and entries where they were the mentee.
// Mounted on GET /profile/history.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	asMentor, err := h.History.ListByMentor(ctx, userID)
	if err != nil {
		h.Log.Error("history load failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	asMentee, err := h.History.ListByMentee(ctx, userID)
	if err != nil {
		h.Log.Error("history load failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	writeOK(w, map[string]interface{}{"as_mentor": asMentor, "as_mentee": asMentee})
}
