package services

import (
	"context"
	"time"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
	"pieceJobBack/internal/safety"
)

// SafetyService exposes the monitor's manual interactions to the parties of a job.
type SafetyService struct {
	Registry *repositories.Registry
	Monitor  *safety.Monitor
	Now      func() time.Time
}

func (s *SafetyService) party(jobID, actorID string) (models.Job, error) {
	job, err := s.Registry.GetJob(jobID)
	if err != nil {
		return models.Job{}, err
	}
	if actorID != "" && actorID != job.CustomerID && actorID != job.ProviderID {
		return models.Job{}, models.ErrForbidden
	}
	return job, nil
}

// State returns the monitor snapshot of an in-progress job.
func (s *SafetyService) State(ctx context.Context, jobID, actorID string) (models.SafetyState, error) {
	if _, err := s.party(jobID, actorID); err != nil {
		return models.SafetyState{}, err
	}
	st, ok := s.Monitor.State(jobID)
	if !ok {
		return models.SafetyState{}, safety.ErrNotMonitored
	}
	return st, nil
}

func (s *SafetyService) ConfirmSafety(ctx context.Context, jobID, actorID string) (models.SafetyState, error) {
	if _, err := s.party(jobID, actorID); err != nil {
		return models.SafetyState{}, err
	}
	if err := s.Monitor.ConfirmSafety(jobID, actorID, clock(s.Now)); err != nil {
		return models.SafetyState{}, err
	}
	st, _ := s.Monitor.State(jobID)
	return st, nil
}

// RequestEmergencyHelp raises an emergency for any job the actor is party to.
func (s *SafetyService) RequestEmergencyHelp(ctx context.Context, jobID, actorID string) error {
	job, err := s.party(jobID, actorID)
	if err != nil {
		return err
	}
	s.Monitor.RequestEmergencyHelp(safety.TargetFromJob(job), actorID, clock(s.Now))
	return nil
}
