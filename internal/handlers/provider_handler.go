package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/services"
)

type ProviderHandler struct {
	Service  *services.ProviderService
	Reviews  *services.ReviewService
	ErrorLog *log.Logger
}

func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	origin, radius, err := parseLocation(r)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	providers, err := h.Service.ListProviders(r.Context(), origin, radius)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// Nearby lists online providers around lat/lon, nearest first.
func (h *ProviderHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	origin, radius, err := parseLocation(r)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	if origin == nil {
		writeServiceError(w, h.ErrorLog, models.Invalid("location", "lat and lon are required"))
		return
	}
	limit, err := parseLimit(r, 20)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	providers, err := h.Service.NearbyOnline(r.Context(), *origin, radius, limit)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProvider(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpsertProvider creates or replaces the caller's own profile.
func (h *ProviderHandler) UpsertProvider(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get(":id")
	if id != userID {
		writeServiceError(w, h.ErrorLog, models.ErrForbidden)
		return
	}
	var p models.Provider
	if err := decodeJSON(r, &p); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	p.ID = id

	saved, err := h.Service.UpsertProvider(r.Context(), p)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *ProviderHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var update models.ProviderLocationUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	p, err := h.Service.UpdateLocation(r.Context(), r.URL.Query().Get(":id"), userID, update)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProviderHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListForProvider(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
