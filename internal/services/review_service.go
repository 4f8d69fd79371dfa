package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

type ReviewService struct {
	Registry *repositories.Registry
	Now      func() time.Time
}

// CreateReview records a review between the two parties of a completed job.
// A review of the provider updates its rating and review count.
func (s *ReviewService) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	review.Comment = strings.TrimSpace(review.Comment)
	switch {
	case review.JobID == "":
		return models.Review{}, models.Invalid("job_id", "is required")
	case review.ReviewerID == "":
		return models.Review{}, models.Invalid("reviewer_id", "is required")
	case review.RevieweeID == "":
		return models.Review{}, models.Invalid("reviewee_id", "is required")
	case review.Rating < 1 || review.Rating > 5:
		return models.Review{}, models.Invalid("rating", "must be between 1 and 5")
	}

	job, err := s.Registry.GetJob(review.JobID)
	if err != nil {
		return models.Review{}, err
	}
	if job.Status != models.JobStatusCompleted {
		return models.Review{}, models.ErrInvalidState
	}
	parties := map[string]string{job.CustomerID: job.ProviderID, job.ProviderID: job.CustomerID}
	if other, ok := parties[review.ReviewerID]; !ok || other != review.RevieweeID {
		return models.Review{}, models.ErrForbidden
	}

	if p, err := s.Registry.GetProvider(review.ReviewerID); err == nil {
		review.ReviewerName = p.Name
		review.ReviewerAvatar = p.Avatar
	}
	review.ID = uuid.NewString()
	review.CreatedAt = clock(s.Now)
	return s.Registry.AddReview(review)
}

func (s *ReviewService) ListForProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	if _, err := s.Registry.GetProvider(providerID); err != nil {
		return nil, err
	}
	return s.Registry.ListReviews(providerID), nil
}
