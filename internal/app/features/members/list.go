// internal/app/features/members/list.go
package members

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memberRow struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Affiliation string `json:"affiliation,omitempty"`
	MenteeCount int    `json:"mentee_count"`
	HasMentor   bool   `json:"has_mentor"`
}

type memberPage struct {
	Members   []memberRow `json:"members"`
	HasNext   bool        `json:"has_next"`
	AfterName string      `json:"after_name,omitempty"`
	AfterID   string      `json:"after_id,omitempty"`
}

// ServeList returns a page of members, optionally filtered by a
// case-insensitive name prefix (?q=). Keyset pagination via
// ?after_name= and ?after_id= from the previous page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "q")
	afterName := query.Get(r, "after_name")

	var afterID primitive.ObjectID
	if hex := query.Get(r, "after_id"); hex != "" {
		var err error
		afterID, err = primitive.ObjectIDFromHex(hex)
		if err != nil {
			writeFail(w, http.StatusBadRequest, "invalid after_id")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, q, afterName, afterID, paging.LimitPlusOne())
	if err != nil {
		h.Log.Error("member list failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	res := paging.TrimPage(&users)

	page := memberPage{Members: make([]memberRow, 0, len(users)), HasNext: res.HasNext}
	for _, u := range users {
		page.Members = append(page.Members, memberRow{
			ID:          u.ID.Hex(),
			FullName:    u.FullName,
			Email:       u.Email,
			Role:        u.Role,
			Affiliation: u.Affiliation,
			MenteeCount: len(u.MenteeIDs),
			HasMentor:   u.MentorID != nil,
		})
	}
	if res.HasNext && len(users) > 0 {
		last := users[len(users)-1]
		page.AfterName = last.FullNameCI
		page.AfterID = last.ID.Hex()
	}
	writeOK(w, page)
}

// ServeMember returns one member's record plus their current assignments.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeFail(w, http.StatusNotFound, "member not found")
			return
		}
		h.Log.Error("member load failed", zap.Error(err))
		writeFail(w, http.StatusInternalServerError, "operation failed; please try again")
		return
	}
	writeOK(w, u)
}
