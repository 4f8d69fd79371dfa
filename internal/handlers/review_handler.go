package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/services"
)

type ReviewHandler struct {
	Service  *services.ReviewService
	ErrorLog *log.Logger
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	review.ReviewerID = userID

	saved, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
