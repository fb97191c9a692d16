package locations

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
	r.Get("/{id}/residents", h.Residents)
	r.Get("/{id}/timestamps", h.Timestamps)
	r.Get("/{id}/timestamps/{start}/{end}", h.TimestampsRange)

	return r
}
