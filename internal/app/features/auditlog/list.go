// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pageSize = 50

// ServeList handles GET /audit with optional filters:
// ?category=, ?event_type=, ?user_id=, ?start_date=, ?end_date= (YYYY-MM-DD),
// and ?page= (1-based).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	eventType := strings.TrimSpace(r.URL.Query().Get("event_type"))
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Limit:     pageSize,
		Offset:    int64((page - 1) * pageSize),
	}

	if hex := strings.TrimSpace(r.URL.Query().Get("user_id")); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		filter.UserID = &id
	}

	if startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			filter.StartTime = &t
		}
	}
	if endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			// End of day
			endOfDay := t.Add(24*time.Hour - time.Second)
			filter.EndTime = &endOfDay
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	events, err := h.Events.List(ctx, filter)
	if err != nil {
		h.Log.Error("audit event list failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}

	writeOK(w, map[string]interface{}{
		"events": events,
		"page":   page,
	})
}
