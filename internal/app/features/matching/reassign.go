// internal/app/features/matching/reassign.go
package matching

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reassignRequest struct {
	MenteeID    string `json:"mentee_id"`
	OldMentorID string `json:"old_mentor_id"`
	NewMentorID string `json:"new_mentor_id"`
}

// HandleReassign moves a mentee between mentors. Mounted on POST /matching/reassign.
func (h *Handler) HandleReassign(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	menteeID, err := primitive.ObjectIDFromHex(req.MenteeID)
	if err != nil {
		writeBadRequest(w, "invalid mentee ID")
		return
	}
	oldMentorID, err := primitive.ObjectIDFromHex(req.OldMentorID)
	if err != nil {
		writeBadRequest(w, "invalid old mentor ID")
		return
	}
	newMentorID, err := primitive.ObjectIDFromHex(req.NewMentorID)
	if err != nil {
		writeBadRequest(w, "invalid new mentor ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Matches.Reassign(ctx, menteeID, oldMentorID, newMentorID); err != nil {
		h.writeErr(w, err)
		return
	}

	h.AuditLog.MentorshipReassigned(ctx, r, actorID, menteeID, oldMentorID, newMentorID)
	writeOK(w, nil)
}
