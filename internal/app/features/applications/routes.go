// internal/app/features/applications/routes.go
package applications

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleSubmit)
		pr.Get("/mine", h.ServeMine)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Get("/", h.ServeQueue)
		pr.Post("/{id}/review", h.HandleReview)
	})

	return r
}
