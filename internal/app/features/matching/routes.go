// internal/app/features/matching/routes.go
package matching

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Assignment mutations and the pair list are admin-only.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Post("/assign", h.HandleAssign)
		pr.Post("/end", h.HandleEnd)
		pr.Post("/reassign", h.HandleReassign)
		pr.Get("/pairs", h.ServePairs)
		pr.Get("/start-date", h.ServeStartDate)
	})

	// Mentors acknowledge their own notification flag.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/acknowledge", h.HandleAcknowledge)
	})

	return r
}
