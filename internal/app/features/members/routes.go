// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member directory. Admin only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAdmin)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeMember)
	})

	return r
}
