// internal/app/features/chat/routes.go
package chat

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/{mentorID}/{menteeID}/messages", h.ServeMessages)
		pr.Post("/{mentorID}/{menteeID}/messages", h.HandlePost)
	})

	return r
}
