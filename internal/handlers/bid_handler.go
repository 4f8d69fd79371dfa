package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/services"
)

type BidHandler struct {
	Service  *services.BidService
	ErrorLog *log.Logger
}

// SubmitBid places a bid with the caller as provider.
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var draft models.BidDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	draft.ProviderID = userID

	bid, err := h.Service.SubmitBid(r.Context(), draft)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, bid)
}

// AcceptBid confirms the job for the bid's provider. Only the job owner may accept.
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	job, err := h.Service.AcceptBid(r.Context(), r.URL.Query().Get(":id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
