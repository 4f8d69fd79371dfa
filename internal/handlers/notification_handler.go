package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/services"
)

type NotificationHandler struct {
	Service  *services.NotificationService
	ErrorLog *log.Logger
}

// List returns the caller's inbox, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(r.Context(), r.URL.Query().Get(":id"), userID); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
