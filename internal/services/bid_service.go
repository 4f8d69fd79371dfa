package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pieceJobBack/internal/metrics"
	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

type BidService struct {
	Registry      *repositories.Registry
	Notifications *NotificationService
	Now           func() time.Time
}

func validateBidDraft(d *models.BidDraft) error {
	d.Amount = strings.TrimSpace(d.Amount)
	d.Message = strings.TrimSpace(d.Message)
	switch {
	case d.JobID == "":
		return models.Invalid("job_id", "is required")
	case d.ProviderID == "":
		return models.Invalid("provider_id", "is required")
	case d.Message == "":
		return models.Invalid("message", "is required")
	case d.EstimatedDuration <= 0:
		return models.Invalid("estimated_duration", "must be positive")
	}
	_, err := parseAmount(d.Amount)
	return err
}

// SubmitBid validates the draft and appends a pending bid to the job.
func (s *BidService) SubmitBid(ctx context.Context, draft models.BidDraft) (models.Bid, error) {
	if err := validateBidDraft(&draft); err != nil {
		return models.Bid{}, err
	}
	now := clock(s.Now)
	bid, err := s.Registry.CreateBid(models.Bid{
		ID:                uuid.NewString(),
		JobID:             draft.JobID,
		ProviderID:        draft.ProviderID,
		Amount:            draft.Amount,
		Message:           draft.Message,
		EstimatedDuration: draft.EstimatedDuration,
		SubmittedAt:       now,
	})
	if err != nil {
		return models.Bid{}, err
	}
	metrics.BidsSubmittedTotal.Inc()
	bid.TimeSubmitted = timeAgo(bid.SubmittedAt, now)

	if s.Notifications != nil {
		if job, err := s.Registry.GetJob(bid.JobID); err == nil {
			s.Notifications.Notify(job.CustomerID, models.NotificationBidReceived, "New Bid Received",
				fmt.Sprintf("%s bid %s on %q.", bid.ProviderName, bid.Amount, job.Title),
				map[string]string{"job_id": job.ID, "bid_id": bid.ID})
		}
	}
	return bid, nil
}

// AcceptBid accepts a pending bid. actorID, when set, must own the job.
func (s *BidService) AcceptBid(ctx context.Context, bidID, actorID string) (models.Job, error) {
	if actorID != "" {
		bid, err := s.Registry.GetBid(bidID)
		if err != nil {
			return models.Job{}, err
		}
		job, err := s.Registry.GetJob(bid.JobID)
		if err != nil {
			return models.Job{}, err
		}
		if job.CustomerID != actorID {
			return models.Job{}, models.ErrForbidden
		}
	}

	job, bid, err := s.Registry.AcceptBid(bidID)
	if err != nil {
		return models.Job{}, err
	}
	metrics.BidsAcceptedTotal.Inc()
	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status)).Inc()

	if s.Notifications != nil {
		s.Notifications.Notify(bid.ProviderID, models.NotificationBidAccepted, "Bid Accepted",
			fmt.Sprintf("Your bid of %s for %q was accepted.", bid.Amount, job.Title),
			map[string]string{"job_id": job.ID, "bid_id": bid.ID})
	}
	labelJob(&job, clock(s.Now))
	return job, nil
}

func (s *BidService) ListBids(ctx context.Context, jobID string) ([]models.Bid, error) {
	bids, err := s.Registry.ListBids(jobID)
	if err != nil {
		return nil, err
	}
	now := clock(s.Now)
	for i := range bids {
		bids[i].TimeSubmitted = timeAgo(bids[i].SubmittedAt, now)
	}
	return bids, nil
}
