package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/services"
	"pieceJobBack/internal/ws"
)

type SafetyHandler struct {
	Service  *services.SafetyService
	Hub      *ws.Hub
	ErrorLog *log.Logger
}

func (h *SafetyHandler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	state, err := h.Service.State(r.Context(), r.URL.Query().Get(":job_id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *SafetyHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	state, err := h.Service.ConfirmSafety(r.Context(), r.URL.Query().Get(":job_id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *SafetyHandler) Emergency(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.RequestEmergencyHelp(r.Context(), r.URL.Query().Get(":job_id"), userID); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "help requested"})
}

// Stream upgrades the caller to the realtime safety channel.
func (h *SafetyHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.Hub.ServeWS(w, r, UserIDFromContext(r.Context()))
}
