// internal/app/features/chat/messages.go
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/limits"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// pairParams extracts and validates the URL's mentor/mentee IDs.
func pairParams(r *http.Request) (mentorID, menteeID primitive.ObjectID, err error) {
	mentorID, err = primitive.ObjectIDFromHex(chi.URLParam(r, "mentorID"))
	if err != nil {
		return
	}
	menteeID, err = primitive.ObjectIDFromHex(chi.URLParam(r, "menteeID"))
	return
}

// ServeMessages lists a conversation in send order. Mounted on
// GET /chat/{mentorID}/{menteeID}/messages?after=<messageID>; the optional
// cursor returns only messages newer than the one named.
func (h *Handler) ServeMessages(w http.ResponseWriter, r *http.Request) {
	mentorID, menteeID, err := pairParams(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if status, msg := h.authorizePair(ctx, r, mentorID, menteeID); status != 0 {
		writeFail(w, status, msg)
		return
	}

	var after primitive.ObjectID
	if s := query.Get(r, "after"); s != "" {
		after, err = primitive.ObjectIDFromHex(s)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid cursor")
			return
		}
	}

	msgs, err := h.Messages.List(ctx, mentorID, menteeID, after, paging.LimitPlusOne())
	if err != nil {
		h.Log.Error("message list failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	page := paging.TrimPage(&msgs)
	writeOK(w, map[string]interface{}{"messages": msgs, "has_next": page.HasNext})
}

type postRequest struct {
	Body string `json:"body"`
}

// HandlePost appends a message to a conversation. Mounted on
// POST /chat/{mentorID}/{menteeID}/messages.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	mentorID, menteeID, err := pairParams(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body := htmlsanitize.Sanitize(strings.TrimSpace(req.Body))
	if body == "" {
		writeFail(w, http.StatusBadRequest, "message body is empty")
		return
	}
	if len(body) > limits.MaxChatMessageLen {
		writeFail(w, http.StatusBadRequest, "message body is too long")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if status, msg := h.authorizePair(ctx, r, mentorID, menteeID); status != 0 {
		writeFail(w, status, msg)
		return
	}

	_, _, senderID, _ := authz.UserCtx(r)
	msg, err := h.Messages.Append(ctx, mentorID, menteeID, senderID, body)
	if err != nil {
		h.Log.Error("message append failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	writeOK(w, msg)
}
