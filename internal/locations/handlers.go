package locations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KMastroluca/mvscanner/internal/facility"
	"github.com/KMastroluca/mvscanner/internal/utils"
)

type Handler struct {
	Store facility.Store
}

func locationID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Store.ListLocations()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, locations)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	location, err := h.Store.GetLocation(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, location)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input facility.Location
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Store.CreateLocation(input)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	var patch facility.LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.Store.UpdateLocation(id, patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	if err := h.Store.DeleteLocation(id); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Residents lists everyone whose latest scan points at this location.
func (h *Handler) Residents(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	residents, err := h.Store.ResidentsAt(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, residents)
}

func (h *Handler) Timestamps(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	events, err := h.Store.LocationTimestamps(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}

func (h *Handler) TimestampsRange(w http.ResponseWriter, r *http.Request) {
	id, err := locationID(r)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	dr, err := facility.ParseDateRange(chi.URLParam(r, "start"), chi.URLParam(r, "end"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	events, err := h.Store.LocationTimestampsInRange(id, dr)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}
