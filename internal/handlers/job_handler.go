package handlers

import (
	"io"
	"log"
	"net/http"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/services"
)

const maxImageBytes = 10 << 20

type JobHandler struct {
	Service  *services.JobService
	Bids     *services.BidService
	Messages *services.MessageService
	ErrorLog *log.Logger
}

// CreateJob posts a job on behalf of the caller.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var draft models.JobDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	draft.CustomerID = userID

	job, err := h.Service.CreateJob(r.Context(), draft)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// ListJobs returns jobs, ranked by distance when lat and lon are given.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	origin, radius, err := parseLocation(r)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	jobs, err := h.Service.ListJobs(r.Context(), origin, radius)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Service.GetJob(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) StartJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	job, err := h.Service.StartJob(r.Context(), r.URL.Query().Get(":id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	job, err := h.Service.CompleteJob(r.Context(), r.URL.Query().Get(":id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	job, err := h.Service.CancelJob(r.Context(), r.URL.Query().Get(":id"), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// UploadImage accepts a multipart "image" field and appends its URL to the job.
func (h *JobHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	job, err := h.Service.AttachImage(r.Context(), r.URL.Query().Get(":id"), userID, header.Filename, contentType, body)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.Bids.ListBids(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

func (h *JobHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	msgs, err := h.Messages.ListForJob(r.Context(), r.URL.Query().Get(":id"))
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HistoryHandler serves the caller's archived jobs.
type HistoryHandler struct {
	Service  *services.RetentionService
	ErrorLog *log.Logger
}

func (h *HistoryHandler) Archived(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	jobs, err := h.Service.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.ErrorLog, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}
