package services

import (
	"context"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"pieceJobBack/internal/geo"
	"pieceJobBack/internal/metrics"
	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
	"pieceJobBack/internal/safety"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// JobService owns the job lifecycle: posting, listing by proximity and the
// start/complete/cancel transitions that drive safety monitoring.
type JobService struct {
	Registry        *repositories.Registry
	Monitor         *safety.Monitor
	Notifications   *NotificationService
	Images          ImageUploader
	DefaultRadiusKm float64
	Now             func() time.Time
}

func validateJobDraft(d *models.JobDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Location = strings.TrimSpace(d.Location)
	d.Budget = strings.TrimSpace(d.Budget)
	d.Category = strings.TrimSpace(d.Category)

	switch {
	case d.CustomerID == "":
		return models.Invalid("customer_id", "is required")
	case d.Title == "":
		return models.Invalid("title", "is required")
	case d.Description == "":
		return models.Invalid("description", "is required")
	case d.Location == "":
		return models.Invalid("location", "is required")
	case d.Budget == "":
		return models.Invalid("budget", "is required")
	case d.Category == "":
		return models.Invalid("category", "is required")
	case d.EstimatedDuration <= 0:
		return models.Invalid("estimated_duration", "must be positive")
	}
	if d.Urgency == "" {
		d.Urgency = models.UrgencyMedium
	}
	if !d.Urgency.Valid() {
		return models.Invalid("urgency", "must be low, medium or high")
	}
	if d.Coordinates != nil && !d.Coordinates.Valid() {
		return models.Invalid("coordinates", "out of range")
	}
	return nil
}

func (s *JobService) CreateJob(ctx context.Context, draft models.JobDraft) (models.Job, error) {
	if err := validateJobDraft(&draft); err != nil {
		return models.Job{}, err
	}
	now := clock(s.Now)
	job, err := s.Registry.CreateJob(models.Job{
		ID:                uuid.NewString(),
		CustomerID:        draft.CustomerID,
		Title:             draft.Title,
		Description:       draft.Description,
		Category:          draft.Category,
		Location:          draft.Location,
		Coordinates:       draft.Coordinates,
		Images:            draft.Images,
		Budget:            draft.Budget,
		EstimatedDuration: draft.EstimatedDuration,
		Urgency:           draft.Urgency,
		PostedAt:          now,
	})
	if err != nil {
		return models.Job{}, err
	}
	metrics.JobsPostedTotal.WithLabelValues(job.Category).Inc()
	labelJob(&job, now)
	return job, nil
}

// ListJobs returns jobs most recent first. With an origin, jobs farther than
// radiusKm are dropped and the rest are ordered by distance, jobs without
// coordinates last. A non-positive radius means the default radius.
func (s *JobService) ListJobs(ctx context.Context, origin *models.Coordinates, radiusKm float64) ([]models.Job, error) {
	now := clock(s.Now)
	jobs := s.Registry.ListJobs()
	if origin == nil {
		for i := range jobs {
			labelJob(&jobs[i], now)
		}
		return jobs, nil
	}
	if !origin.Valid() {
		return nil, models.Invalid("location", "out of range")
	}
	if math.IsNaN(radiusKm) {
		return nil, models.Invalid("radius", "must be a number")
	}
	if radiusKm <= 0 {
		radiusKm = s.DefaultRadiusKm
	}

	ranked := geo.Rank(jobs, *origin, radiusKm, func(j models.Job) *models.Coordinates { return j.Coordinates })
	out := make([]models.Job, 0, len(ranked))
	for _, r := range ranked {
		job := r.Item
		job.Distance = r.Label()
		labelJob(&job, now)
		out = append(out, job)
	}
	return out, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (models.Job, error) {
	job, err := s.Registry.GetJob(id)
	if err != nil {
		return models.Job{}, err
	}
	labelJob(&job, clock(s.Now))
	return job, nil
}

// StartJob moves a confirmed job to in-progress and begins safety monitoring.
// actorID, when set, must be the customer or the assigned provider.
func (s *JobService) StartJob(ctx context.Context, id, actorID string) (models.Job, error) {
	if err := s.authorizeParty(id, actorID); err != nil {
		return models.Job{}, err
	}
	now := clock(s.Now)
	job, err := s.Registry.TransitionJob(id, models.JobStatusInProgress, now)
	if err != nil {
		return models.Job{}, err
	}
	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status)).Inc()
	if s.Monitor != nil {
		if !s.Monitor.Track(safety.TargetFromJob(job), now) {
			// The job left in-progress before monitoring began.
			if current, err := s.Registry.GetJob(id); err == nil {
				job = current
			}
		}
		metrics.MonitoredJobs.Set(float64(s.Monitor.Tracked()))
	}
	s.notifyParties(job, models.NotificationJobStarted, "Job Started",
		fmt.Sprintf("Work on %q has started. Safety monitoring is active.", job.Title))
	labelJob(&job, now)
	return job, nil
}

// CompleteJob finishes an in-progress job and stops its safety monitoring.
func (s *JobService) CompleteJob(ctx context.Context, id, actorID string) (models.Job, error) {
	if err := s.authorizeParty(id, actorID); err != nil {
		return models.Job{}, err
	}
	now := clock(s.Now)
	job, err := s.Registry.TransitionJob(id, models.JobStatusCompleted, now)
	if err != nil {
		return models.Job{}, err
	}
	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status)).Inc()
	s.stopMonitoring(job.ID)
	s.notifyParties(job, models.NotificationJobCompleted, "Job Completed",
		fmt.Sprintf("%q has been marked as completed.", job.Title))
	labelJob(&job, now)
	return job, nil
}

// CancelJob cancels a job that has not started. Only the customer may cancel.
func (s *JobService) CancelJob(ctx context.Context, id, actorID string) (models.Job, error) {
	current, err := s.Registry.GetJob(id)
	if err != nil {
		return models.Job{}, err
	}
	if actorID != "" && actorID != current.CustomerID {
		return models.Job{}, models.ErrForbidden
	}
	now := clock(s.Now)
	job, err := s.Registry.TransitionJob(id, models.JobStatusCancelled, now)
	if err != nil {
		return models.Job{}, err
	}
	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status)).Inc()
	s.stopMonitoring(job.ID)
	labelJob(&job, now)
	return job, nil
}

// AttachImage uploads an image for the job and appends its URL.
func (s *JobService) AttachImage(ctx context.Context, id, actorID, filename, contentType string, body []byte) (models.Job, error) {
	if s.Images == nil {
		return models.Job{}, fmt.Errorf("image storage is not configured: %w", models.ErrInvalidState)
	}
	if len(body) == 0 {
		return models.Job{}, models.Invalid("image", "is empty")
	}
	current, err := s.Registry.GetJob(id)
	if err != nil {
		return models.Job{}, err
	}
	if actorID != "" && actorID != current.CustomerID {
		return models.Job{}, models.ErrForbidden
	}
	key := fmt.Sprintf("jobs/%s/%s%s", id, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, key, contentType, body)
	if err != nil {
		return models.Job{}, fmt.Errorf("upload job image: %w", err)
	}
	job, err := s.Registry.AppendJobImage(id, url)
	if err != nil {
		return models.Job{}, err
	}
	labelJob(&job, clock(s.Now))
	return job, nil
}

func (s *JobService) authorizeParty(jobID, actorID string) error {
	if actorID == "" {
		return nil
	}
	job, err := s.Registry.GetJob(jobID)
	if err != nil {
		return err
	}
	if actorID != job.CustomerID && actorID != job.ProviderID {
		return models.ErrForbidden
	}
	return nil
}

func (s *JobService) stopMonitoring(jobID string) {
	if s.Monitor == nil {
		return
	}
	s.Monitor.Untrack(jobID)
	metrics.MonitoredJobs.Set(float64(s.Monitor.Tracked()))
}

func (s *JobService) notifyParties(job models.Job, kind models.NotificationType, title, message string) {
	if s.Notifications == nil {
		return
	}
	data := map[string]string{"job_id": job.ID}
	for _, userID := range []string{job.CustomerID, job.ProviderID} {
		if userID != "" {
			s.Notifications.Notify(userID, kind, title, message, data)
		}
	}
}
