package repositories

import (
	"fmt"
	"sync"
	"time"

	"pieceJobBack/internal/fsm"
	"pieceJobBack/internal/models"
)

// Registry is the in-memory store for jobs, bids, providers, reviews,
// notifications and messages. Every operation runs under one mutex so a
// reader never sees a half-applied mutation. Callers always receive copies.
type Registry struct {
	mu sync.RWMutex

	jobs     map[string]*models.Job
	jobOrder []string // most recent first

	bids    map[string]*models.Bid
	jobBids map[string][]string // submission order

	providers     map[string]*models.Provider
	providerOrder []string

	reviews       []models.Review
	notifications []models.Notification // newest first
	messages      []models.Message
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs:      make(map[string]*models.Job),
		bids:      make(map[string]*models.Bid),
		jobBids:   make(map[string][]string),
		providers: make(map[string]*models.Provider),
	}
}

// CreateJob inserts job at the head of the collection with status posted
// and no bids.
func (r *Registry) CreateJob(job models.Job) (models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return models.Job{}, fmt.Errorf("job %s: %w", job.ID, models.ErrInvalidState)
	}
	job.Status = models.JobStatusPosted
	job.Bids = nil
	job.ProviderID = ""
	stored := cloneJob(job)
	r.jobs[job.ID] = &stored
	r.jobOrder = append([]string{job.ID}, r.jobOrder...)
	return r.snapshotJob(&stored), nil
}

// GetJob returns a copy of the job with its bids in submission order.
func (r *Registry) GetJob(id string) (models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return models.Job{}, models.ErrJobNotFound
	}
	return r.snapshotJob(job), nil
}

// JobStatus returns the job's current status without copying the record.
func (r *Registry) JobStatus(id string) (models.JobStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return "", false
	}
	return job.Status, true
}

// ListJobs returns all jobs, most recent first.
func (r *Registry) ListJobs() []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Job, 0, len(r.jobOrder))
	for _, id := range r.jobOrder {
		out = append(out, r.snapshotJob(r.jobs[id]))
	}
	return out
}

// CreateBid appends bid to its job. The job must exist and still be
// accepting bids and the provider must be registered.
func (r *Registry) CreateBid(bid models.Bid) (models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[bid.JobID]
	if !ok {
		return models.Bid{}, models.ErrJobNotFound
	}
	if job.Status != models.JobStatusPosted {
		return models.Bid{}, fmt.Errorf("job %s is %s: %w", job.ID, job.Status, models.ErrInvalidState)
	}
	provider, ok := r.providers[bid.ProviderID]
	if !ok {
		return models.Bid{}, models.ErrProviderNotFound
	}
	if _, exists := r.bids[bid.ID]; exists {
		return models.Bid{}, fmt.Errorf("bid %s: %w", bid.ID, models.ErrInvalidState)
	}

	bid.Status = models.BidStatusPending
	bid.ProviderName = provider.Name
	bid.ProviderAvatar = provider.Avatar
	stored := bid
	r.bids[bid.ID] = &stored
	r.jobBids[bid.JobID] = append(r.jobBids[bid.JobID], bid.ID)
	return stored, nil
}

// GetBid returns a copy of a single bid.
func (r *Registry) GetBid(id string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[id]
	if !ok {
		return models.Bid{}, models.ErrBidNotFound
	}
	return *bid, nil
}

// ListBids returns the bids of a job in submission order.
func (r *Registry) ListBids(jobID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.jobs[jobID]; !ok {
		return nil, models.ErrJobNotFound
	}
	return r.bidsFor(jobID), nil
}

// AcceptBid accepts a pending bid, rejects every sibling and confirms the
// job with the bid's provider, all in one critical section.
func (r *Registry) AcceptBid(bidID string) (models.Job, models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return models.Job{}, models.Bid{}, models.ErrBidNotFound
	}
	if !fsm.CanTransitionBid(bid.Status, models.BidStatusAccepted) {
		return models.Job{}, models.Bid{}, fmt.Errorf("bid %s is %s: %w", bid.ID, bid.Status, models.ErrInvalidState)
	}
	job, ok := r.jobs[bid.JobID]
	if !ok {
		return models.Job{}, models.Bid{}, models.ErrJobNotFound
	}
	if !fsm.CanTransition(job.Status, models.JobStatusConfirmed) {
		return models.Job{}, models.Bid{}, fmt.Errorf("job %s is %s: %w", job.ID, job.Status, models.ErrInvalidState)
	}

	for _, id := range r.jobBids[job.ID] {
		if id == bidID {
			continue
		}
		sibling := r.bids[id]
		if sibling.Status == models.BidStatusPending {
			sibling.Status = models.BidStatusRejected
		}
	}
	bid.Status = models.BidStatusAccepted
	job.Status = models.JobStatusConfirmed
	job.ProviderID = bid.ProviderID
	return r.snapshotJob(job), *bid, nil
}

// TransitionJob moves a job to status `to` if the transition table allows
// it and stamps the matching timestamp. Cancelling rejects pending bids.
// Completing credits the assigned provider with a finished job.
func (r *Registry) TransitionJob(jobID string, to models.JobStatus, now time.Time) (models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return models.Job{}, models.ErrJobNotFound
	}
	if !fsm.CanTransition(job.Status, to) {
		return models.Job{}, fmt.Errorf("job %s cannot move from %s to %s: %w", job.ID, job.Status, to, models.ErrInvalidState)
	}

	at := now
	switch to {
	case models.JobStatusInProgress:
		job.StartTime = &at
	case models.JobStatusCompleted:
		job.CompletedTime = &at
		if p, ok := r.providers[job.ProviderID]; ok {
			p.CompletedJobs++
		}
	case models.JobStatusCancelled:
		job.CancelledTime = &at
		for _, id := range r.jobBids[job.ID] {
			if b := r.bids[id]; b.Status == models.BidStatusPending {
				b.Status = models.BidStatusRejected
			}
		}
	}
	job.Status = to
	return r.snapshotJob(job), nil
}

// AppendJobImage adds an image URL to a job.
func (r *Registry) AppendJobImage(jobID, url string) (models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return models.Job{}, models.ErrJobNotFound
	}
	job.Images = append(job.Images, url)
	return r.snapshotJob(job), nil
}

// RetiredJobs returns terminal jobs that reached their final state before cutoff.
func (r *Registry) RetiredJobs(cutoff time.Time) []models.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Job
	for _, id := range r.jobOrder {
		job := r.jobs[id]
		at := job.RetiredAt()
		if at == nil || !at.Before(cutoff) {
			continue
		}
		out = append(out, r.snapshotJob(job))
	}
	return out
}

// DeleteJobs removes terminal jobs and their bids. Non-terminal or unknown
// ids are skipped. It returns the number of jobs removed.
func (r *Registry) DeleteJobs(ids []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		job, ok := r.jobs[id]
		if !ok || !job.Terminal() {
			continue
		}
		drop[id] = struct{}{}
		for _, bidID := range r.jobBids[id] {
			delete(r.bids, bidID)
		}
		delete(r.jobBids, id)
		delete(r.jobs, id)
	}
	if len(drop) == 0 {
		return 0
	}
	kept := r.jobOrder[:0]
	for _, id := range r.jobOrder {
		if _, gone := drop[id]; !gone {
			kept = append(kept, id)
		}
	}
	r.jobOrder = kept
	return len(drop)
}

func (r *Registry) bidsFor(jobID string) []models.Bid {
	ids := r.jobBids[jobID]
	out := make([]models.Bid, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.bids[id])
	}
	return out
}

func (r *Registry) snapshotJob(job *models.Job) models.Job {
	out := cloneJob(*job)
	out.Bids = r.bidsFor(job.ID)
	return out
}

func cloneJob(job models.Job) models.Job {
	if job.Coordinates != nil {
		c := *job.Coordinates
		job.Coordinates = &c
	}
	if job.Images != nil {
		job.Images = append([]string(nil), job.Images...)
	} else {
		job.Images = []string{}
	}
	job.StartTime = cloneTime(job.StartTime)
	job.CompletedTime = cloneTime(job.CompletedTime)
	job.CancelledTime = cloneTime(job.CancelledTime)
	return job
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
