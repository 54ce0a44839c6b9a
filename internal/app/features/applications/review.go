// internal/app/features/applications/review.go
package applications

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeQueue lists applications for review, oldest first. Mounted on
// GET /applications?status=pending. An empty status lists every application.
func (h *Handler) ServeQueue(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	switch status {
	case "", models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
	default:
		writeFail(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	apps, err := h.Apps.ListByStatus(ctx, status, paging.LimitPlusOne())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	page := paging.TrimPage(&apps)
	writeOK(w, map[string]interface{}{"applications": apps, "has_next": page.HasNext})
}

type reviewRequest struct {
	Decision string `json:"decision"` // "approved" | "rejected"
	Notes    string `json:"notes"`
}

// HandleReview records a decision on one application and refreshes the
// applicant's derived role. Mounted on POST /applications/{id}/review.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	_, _, reviewerID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	appID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Decision != models.ApplicationApproved && req.Decision != models.ApplicationRejected {
		writeFail(w, http.StatusBadRequest, `decision must be "approved" or "rejected"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	app, err := h.Apps.Review(ctx, appID, reviewerID, req.Decision, req.Notes)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	h.AuditLog.ApplicationReviewed(ctx, r, reviewerID, app.UserID, app.Type, req.Decision)
	writeOK(w, app)
}
