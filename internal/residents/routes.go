package residents

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
	r.Get("/{rfid}", h.Get)
	r.Patch("/{rfid}", h.Update)
	r.Delete("/{rfid}", h.Delete)
	r.Get("/{rfid}/location", h.CurrentLocation)
	r.Get("/{rfid}/timestamps", h.Timestamps)
	r.Get("/{rfid}/timestamps/{start}/{end}", h.TimestampsRange)

	return r
}
