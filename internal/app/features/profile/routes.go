// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the profile endpoints. All routes require a signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeProfile)
		pr.Post("/", h.HandleUpdate)
		pr.Get("/history", h.ServeHistory)
	})

	return r
}
