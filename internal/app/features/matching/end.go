// internal/app/features/matching/end.go
package matching

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type endRequest struct {
	MenteeID          string `json:"mentee_id"`
	MentorID          string `json:"mentor_id"`
	TerminationReason string `json:"termination_reason"`
	AdditionalInfo    string `json:"additional_info"`
}

// HandleEnd terminates a mentorship. Mounted on POST /matching/end.
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req endRequest
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

	if err := h.Matches.End(ctx, menteeID, mentorID, req.TerminationReason, req.AdditionalInfo); err != nil {
		h.writeErr(w, err)
		return
	}

	h.AuditLog.MentorshipEnded(ctx, r, actorID, menteeID, mentorID, req.TerminationReason)
	writeOK(w, nil)
}
