// internal/app/features/applications/submit.go
package applications

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
)

type submitRequest struct {
	Type      string `json:"type"` // "mentor" | "mentee"
	Statement string `json:"statement"`
}

// HandleSubmit files a mentorship application for the signed-in user.
// Mounted on POST /applications.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type != models.ApplicationMentor && req.Type != models.ApplicationMentee {
		writeFail(w, http.StatusBadRequest, `type must be "mentor" or "mentee"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	app, err := h.Apps.Submit(ctx, userID, req.Type, htmlsanitize.Sanitize(req.Statement))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeOK(w, app)
}

// ServeMine lists the signed-in user's applications. Mounted on GET /applications/mine.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	apps, err := h.Apps.ListByUser(ctx, userID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeOK(w, apps)
}
