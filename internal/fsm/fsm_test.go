package fsm

import (
	"testing"

	"pieceJobBack/internal/models"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(models.JobStatusPosted, models.JobStatusConfirmed) {
		t.Fatal("expected posted -> confirmed to be allowed")
	}
	if !CanTransition(models.JobStatusConfirmed, models.JobStatusInProgress) {
		t.Fatal("expected confirmed -> in-progress to be allowed")
	}
	if !CanTransition(models.JobStatusInProgress, models.JobStatusCompleted) {
		t.Fatal("expected in-progress -> completed to be allowed")
	}
	if !CanTransition(models.JobStatusConfirmed, models.JobStatusCancelled) {
		t.Fatal("expected confirmed -> cancelled to be allowed")
	}
	if CanTransition(models.JobStatusPosted, models.JobStatusInProgress) {
		t.Fatal("unexpected posted -> in-progress allowed")
	}
	if CanTransition(models.JobStatusInProgress, models.JobStatusCancelled) {
		t.Fatal("unexpected in-progress -> cancelled allowed")
	}
	if CanTransition(models.JobStatusCompleted, models.JobStatusPosted) {
		t.Fatal("unexpected transition out of completed")
	}
	if CanTransition(models.JobStatus("bogus"), models.JobStatusPosted) {
		t.Fatal("unexpected transition from unknown status")
	}
}

func TestCanTransitionBid(t *testing.T) {
	if !CanTransitionBid(models.BidStatusPending, models.BidStatusAccepted) {
		t.Fatal("expected pending -> accepted to be allowed")
	}
	if !CanTransitionBid(models.BidStatusPending, models.BidStatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if CanTransitionBid(models.BidStatusRejected, models.BidStatusAccepted) {
		t.Fatal("rejected must stay terminal")
	}
	if CanTransitionBid(models.BidStatusAccepted, models.BidStatusRejected) {
		t.Fatal("accepted must stay terminal")
	}
}
