package residents

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KMastroluca/mvscanner/internal/facility"
	"github.com/KMastroluca/mvscanner/internal/utils"
)

type Handler struct {
	Store facility.Store
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	residents, err := h.Store.ListResidents()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, residents)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resident, err := h.Store.GetResident(chi.URLParam(r, "rfid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, resident)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input facility.Resident
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.RFID == "" {
		http.Error(w, "rfid is required", http.StatusBadRequest)
		return
	}
	created, err := h.Store.CreateResident(input)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch facility.ResidentUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.Store.UpdateResident(chi.URLParam(r, "rfid"), patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteResident(chi.URLParam(r, "rfid")); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentLocation reports the resident's latest movement event.
func (h *Handler) CurrentLocation(w http.ResponseWriter, r *http.Request) {
	latest, err := h.Store.CurrentLocation(chi.URLParam(r, "rfid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, latest)
}

func (h *Handler) Timestamps(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ResidentTimestamps(chi.URLParam(r, "rfid"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}

func (h *Handler) TimestampsRange(w http.ResponseWriter, r *http.Request) {
	dr, err := facility.ParseDateRange(chi.URLParam(r, "start"), chi.URLParam(r, "end"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	events, err := h.Store.ResidentTimestampsInRange(chi.URLParam(r, "rfid"), dr)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}
