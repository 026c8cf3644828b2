// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/harvestchapel/rosterd/internal/app/system/auth"
)

// Routes mounts the notification feed. Typically: r.Mount("/notifications", notifications.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Patch("/{id}/read", h.HandleMarkRead)
	})

	return r
}
