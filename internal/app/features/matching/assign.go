// internal/app/features/matching/assign.go
package matching

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type assignRequest struct {
	MenteeID string `json:"mentee_id"`
	MentorID string `json:"mentor_id"`
}

// HandleAssign links a mentee to a mentor. Mounted on POST /matching/assign.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	menteeID, err := primitive.ObjectIDFromHex(req.MenteeID)
	if err != nil {
		writeBadRequest(w, "invalid mentee ID")
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(req.MentorID)
	if err != nil {
		writeBadRequest(w, "invalid mentor ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Matches.Assign(ctx, menteeID, mentorID); err != nil {
		h.writeErr(w, err)
		return
	}

	h.AuditLog.MentorshipAssigned(ctx, r, actorID, menteeID, mentorID)
	writeOK(w, nil)
}
