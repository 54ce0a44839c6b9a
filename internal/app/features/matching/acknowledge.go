// internal/app/features/matching/acknowledge.go
package matching

import (
	"context"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
)

// HandleAcknowledge clears the caller's new-mentee notification flag.
// Mounted on POST /matching/acknowledge; mentors call it after seeing the
// "you have a new mentee" notice.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Matches.AcknowledgeNewMatch(ctx, userID); err != nil {
		h.writeErr(w, err)
		return
	}
	writeOK(w, nil)
}
