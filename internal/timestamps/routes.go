package timestamps

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KMastroluca/mvscanner/internal/facility"
)

func SetupRoutes(store facility.Store) http.Handler {
	h := &Handler{Store: store}
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	// Not /{start}/{end}: chi rejects sibling wildcards with different
	// names, and /{id} already owns that position.
	r.Get("/range/{start}/{end}", h.Range)

	return r
}
