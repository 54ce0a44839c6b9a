// internal/app/features/matching/list.go
package matching

import (
	"context"
	"net/http"

	matchstore "github.com/dalemusser/mentorhub/internal/app/store/matches"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pairRow is one verified pair with display names for the admin list.
type pairRow struct {
	MenteeID   string `json:"mentee_id"`
	MenteeName string `json:"mentee_name"`
	MentorID   string `json:"mentor_id"`
	MentorName string `json:"mentor_name"`
}

// ServePairs lists active mentorship pairs. Mounted on GET /matching/pairs.
// Only pairs whose references agree in both directions are reported.
func (h *Handler) ServePairs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pairs, err := h.Matches.ListPairs(ctx)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	names, err := h.displayNames(ctx, pairs)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	rows := make([]pairRow, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, pairRow{
			MenteeID:   p.MenteeID.Hex(),
			MenteeName: names[p.MenteeID],
			MentorID:   p.MentorID.Hex(),
			MentorName: names[p.MentorID],
		})
	}
	writeOK(w, rows)
}

// displayNames batch-loads full names for every user referenced by pairs.
func (h *Handler) displayNames(ctx context.Context, pairs []matchstore.Pair) (map[primitive.ObjectID]string, error) {
	ids := make([]primitive.ObjectID, 0, len(pairs)*2)
	for _, p := range pairs {
		ids = append(ids, p.MenteeID, p.MentorID)
	}
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	cur, err := h.DB.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names, nil
}
