// internal/app/features/schedules/routes.go
package schedules

import (
	"github.com/go-chi/chi/v5"
	"github.com/harvestchapel/rosterd/internal/app/system/auth"
)

// Routes mounts the schedule endpoints. Typically: r.Mount("/schedules", schedules.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Post("/{id}/response", h.HandleResponse)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
