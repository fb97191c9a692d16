package timestamps

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

func eventID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListTimestamps()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		http.Error(w, "Invalid timestamp id", http.StatusBadRequest)
		return
	}
	ts, err := h.Store.GetTimestamp(id)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, ts)
}

// Create ingests one badge scan. Time is optional; the store stamps the
// current instant when it is omitted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input facility.Timestamp
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Store.CreateTimestamp(input)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		http.Error(w, "Invalid timestamp id", http.StatusBadRequest)
		return
	}
	var patch facility.TimestampUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	updated, err := h.Store.UpdateTimestamp(id, patch)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		http.Error(w, "Invalid timestamp id", http.StatusBadRequest)
		return
	}
	if err := h.Store.DeleteTimestamp(id); err != nil {
		utils.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	dr, err := facility.ParseDateRange(chi.URLParam(r, "start"), chi.URLParam(r, "end"))
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	events, err := h.Store.TimestampsInRange(dr)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, events)
}
