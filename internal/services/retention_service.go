package services

import (
	"context"
	"time"

	"pieceJobBack/internal/metrics"
	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

// JobArchive stores retired jobs durably.
type JobArchive interface {
	ArchiveJobs(ctx context.Context, jobs []models.Job) error
	ArchivedJobsByCustomer(ctx context.Context, customerID string) ([]models.Job, error)
}

// RetentionService moves completed and cancelled jobs out of the registry
// once they have been retired for longer than RetainFor.
type RetentionService struct {
	Registry  *repositories.Registry
	Archive   JobArchive
	RetainFor time.Duration
}

// Sweep archives and removes every job retired before now-RetainFor.
// Nothing is removed if archiving fails.
func (s *RetentionService) Sweep(ctx context.Context, now time.Time) (int, error) {
	jobs := s.Registry.RetiredJobs(now.Add(-s.RetainFor))
	if len(jobs) == 0 {
		return 0, nil
	}
	if s.Archive != nil {
		if err := s.Archive.ArchiveJobs(ctx, jobs); err != nil {
			return 0, err
		}
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	removed := s.Registry.DeleteJobs(ids)
	metrics.JobsArchivedTotal.Add(float64(removed))
	return removed, nil
}

// History returns the customer's archived jobs. Without an archive it is empty.
func (s *RetentionService) History(ctx context.Context, customerID string) ([]models.Job, error) {
	if customerID == "" {
		return nil, models.ErrUnauthorized
	}
	if s.Archive == nil {
		return []models.Job{}, nil
	}
	return s.Archive.ArchivedJobsByCustomer(ctx, customerID)
}
