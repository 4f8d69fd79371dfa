package handlers

import (
	"log"
	"net/http"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/services"
)

type MessageHandler struct {
	Service  *services.MessageService
	ErrorLog *log.Logger
}

func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var msg models.Message
	if err := decodeJSON(r, &msg); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	msg.SenderID = userID

	saved, err := h.Service.Send(r.Context(), msg)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
