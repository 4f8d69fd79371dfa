package fsm

import "pieceJobBack/internal/models"

var jobTransitions = map[models.JobStatus]map[models.JobStatus]struct{}{
	models.JobStatusPosted: {
		models.JobStatusConfirmed: {},
		models.JobStatusCancelled: {},
	},
	models.JobStatusConfirmed: {
		models.JobStatusInProgress: {},
		models.JobStatusCancelled:  {},
	},
	models.JobStatusInProgress: {
		models.JobStatusCompleted: {},
	},
	models.JobStatusCompleted: {},
	models.JobStatusCancelled: {},
}

var bidTransitions = map[models.BidStatus]map[models.BidStatus]struct{}{
	models.BidStatusPending: {
		models.BidStatusAccepted: {},
		models.BidStatusRejected: {},
	},
	models.BidStatusAccepted: {},
	models.BidStatusRejected: {},
}

// CanTransition returns whether a job can move from the current status to the target status.
func CanTransition(from, to models.JobStatus) bool {
	allowed, ok := jobTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// CanTransitionBid returns whether a bid can move from the current status to the target status.
func CanTransitionBid(from, to models.BidStatus) bool {
	allowed, ok := bidTransitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// Known reports whether status is part of the job state machine.
func Known(status models.JobStatus) bool {
	_, ok := jobTransitions[status]
	return ok
}
