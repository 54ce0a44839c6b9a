// internal/app/features/matching/startdate.go
package matching

import (
	"context"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeStartDate reports when a pair's mentorship began. Mounted on
// GET /matching/start-date?mentee_id=…&mentor_id=….
func (h *Handler) ServeStartDate(w http.ResponseWriter, r *http.Request) {
	menteeID, err := primitive.ObjectIDFromHex(query.Get(r, "mentee_id"))
	if err != nil {
		writeBadRequest(w, "invalid mentee ID")
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(query.Get(r, "mentor_id"))
	if err != nil {
		writeBadRequest(w, "invalid mentor ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	date, err := h.Matches.StartDate(ctx, menteeID, mentorID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	writeOK(w, map[string]string{"start_date": date})
}
