package repositories

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pieceJobBack/internal/models"
)

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, id := range []string{"p1", "p2", "p3"} {
		r.UpsertProvider(models.Provider{ID: id, Name: "Provider " + id, Avatar: id + ".png"})
	}
	if _, err := r.CreateJob(models.Job{ID: "job1", CustomerID: "c1", Title: "Clean", PostedAt: base}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	return r
}

func mustBid(t *testing.T, r *Registry, id, jobID, providerID string) models.Bid {
	t.Helper()
	bid, err := r.CreateBid(models.Bid{ID: id, JobID: jobID, ProviderID: providerID, Amount: "R100", Message: "hi", EstimatedDuration: 2})
	if err != nil {
		t.Fatalf("CreateBid %s: %v", id, err)
	}
	return bid
}

func TestCreateJobMostRecentFirst(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.CreateJob(models.Job{ID: "job2", Status: models.JobStatusCompleted, ProviderID: "p1"}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	jobs := r.ListJobs()
	if len(jobs) != 2 || jobs[0].ID != "job2" || jobs[1].ID != "job1" {
		t.Fatalf("unexpected order: %+v", jobs)
	}
	if jobs[0].Status != models.JobStatusPosted || jobs[0].ProviderID != "" {
		t.Fatalf("expected new job to be posted without provider, got %s %q", jobs[0].Status, jobs[0].ProviderID)
	}
	if _, err := r.CreateJob(models.Job{ID: "job2"}); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestCreateBidAppendsInSubmissionOrder(t *testing.T) {
	r := newTestRegistry(t)
	first := mustBid(t, r, "b1", "job1", "p1")
	mustBid(t, r, "b2", "job1", "p2")

	if first.Status != models.BidStatusPending {
		t.Fatalf("expected pending, got %s", first.Status)
	}
	if first.ProviderName != "Provider p1" || first.ProviderAvatar != "p1.png" {
		t.Fatalf("expected provider profile on bid, got %+v", first)
	}
	job, err := r.GetJob("job1")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if len(job.Bids) != 2 || job.Bids[0].ID != "b1" || job.Bids[1].ID != "b2" {
		t.Fatalf("unexpected bids: %+v", job.Bids)
	}
	for _, b := range job.Bids {
		if b.JobID != job.ID {
			t.Fatalf("bid %s belongs to %s", b.ID, b.JobID)
		}
	}
}

func TestCreateBidErrors(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.CreateBid(models.Bid{ID: "x", JobID: "missing", ProviderID: "p1"}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found for job, got %v", err)
	}
	if _, err := r.CreateBid(models.Bid{ID: "x", JobID: "job1", ProviderID: "ghost"}); !errors.Is(err, models.ErrProviderNotFound) {
		t.Fatalf("expected provider not found, got %v", err)
	}
	mustBid(t, r, "b1", "job1", "p1")
	if _, _, err := r.AcceptBid("b1"); err != nil {
		t.Fatalf("AcceptBid: %v", err)
	}
	if _, err := r.CreateBid(models.Bid{ID: "late", JobID: "job1", ProviderID: "p2"}); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected invalid state on confirmed job, got %v", err)
	}
}

func TestAcceptBidRejectsSiblings(t *testing.T) {
	r := newTestRegistry(t)
	mustBid(t, r, "b1", "job1", "p1")
	mustBid(t, r, "b2", "job1", "p2")
	mustBid(t, r, "b3", "job1", "p3")

	job, bid, err := r.AcceptBid("b2")
	if err != nil {
		t.Fatalf("AcceptBid: %v", err)
	}
	if bid.Status != models.BidStatusAccepted {
		t.Fatalf("expected accepted, got %s", bid.Status)
	}
	if job.Status != models.JobStatusConfirmed || job.ProviderID != "p2" {
		t.Fatalf("expected confirmed job for p2, got %s %q", job.Status, job.ProviderID)
	}
	want := map[string]models.BidStatus{"b1": models.BidStatusRejected, "b2": models.BidStatusAccepted, "b3": models.BidStatusRejected}
	for _, b := range job.Bids {
		if b.Status != want[b.ID] {
			t.Fatalf("bid %s: expected %s got %s", b.ID, want[b.ID], b.Status)
		}
	}

	if _, _, err := r.AcceptBid("b1"); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected invalid state for rejected bid, got %v", err)
	}
	if _, _, err := r.AcceptBid("b2"); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected invalid state for accepted bid, got %v", err)
	}
	if _, _, err := r.AcceptBid("nope"); !errors.Is(err, models.ErrBidNotFound) {
		t.Fatalf("expected bid not found, got %v", err)
	}
}

func TestAcceptBidConcurrentSingleWinner(t *testing.T) {
	r := newTestRegistry(t)
	const n = 20
	for i := 0; i < n; i++ {
		pid := fmt.Sprintf("cp%d", i)
		r.UpsertProvider(models.Provider{ID: pid})
		mustBid(t, r, fmt.Sprintf("b%d", i), "job1", pid)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, _, err := r.AcceptBid(fmt.Sprintf("b%d", i)); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one successful accept, got %d", wins)
	}
	job, _ := r.GetJob("job1")
	accepted := 0
	for _, b := range job.Bids {
		switch b.Status {
		case models.BidStatusAccepted:
			accepted++
			if job.ProviderID != b.ProviderID {
				t.Fatalf("job provider %s does not match accepted bid %s", job.ProviderID, b.ProviderID)
			}
		case models.BidStatusPending:
			t.Fatalf("bid %s left pending", b.ID)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected one accepted bid, got %d", accepted)
	}
}

func TestTransitionJob(t *testing.T) {
	r := newTestRegistry(t)
	mustBid(t, r, "b1", "job1", "p1")

	if _, err := r.TransitionJob("job1", models.JobStatusInProgress, base); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected invalid state starting a posted job, got %v", err)
	}
	if _, _, err := r.AcceptBid("b1"); err != nil {
		t.Fatalf("AcceptBid: %v", err)
	}
	started := base.Add(time.Hour)
	job, err := r.TransitionJob("job1", models.JobStatusInProgress, started)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if job.StartTime == nil || !job.StartTime.Equal(started) {
		t.Fatalf("expected start time %v, got %v", started, job.StartTime)
	}
	if _, err := r.TransitionJob("job1", models.JobStatusCancelled, started); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected in-progress job to be non-cancellable, got %v", err)
	}
	done := started.Add(3 * time.Hour)
	job, err = r.TransitionJob("job1", models.JobStatusCompleted, done)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if job.CompletedTime == nil || !job.CompletedTime.Equal(done) {
		t.Fatalf("expected completed time %v, got %v", done, job.CompletedTime)
	}
	p, _ := r.GetProvider("p1")
	if p.CompletedJobs != 1 {
		t.Fatalf("expected provider completed jobs to be 1, got %d", p.CompletedJobs)
	}
	if _, err := r.TransitionJob("missing", models.JobStatusCompleted, done); !errors.Is(err, models.ErrJobNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelRejectsPendingBids(t *testing.T) {
	r := newTestRegistry(t)
	mustBid(t, r, "b1", "job1", "p1")
	job, err := r.TransitionJob("job1", models.JobStatusCancelled, base)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if job.Bids[0].Status != models.BidStatusRejected {
		t.Fatalf("expected rejected bid after cancel, got %s", job.Bids[0].Status)
	}
	if job.CancelledTime == nil {
		t.Fatal("expected cancelled time")
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.AppendJobImage("job1", "a.jpg"); err != nil {
		t.Fatalf("AppendJobImage: %v", err)
	}
	job, _ := r.GetJob("job1")
	job.Images[0] = "mutated"
	job.Title = "mutated"
	again, _ := r.GetJob("job1")
	if again.Images[0] != "a.jpg" || again.Title != "Clean" {
		t.Fatalf("registry state leaked through copy: %+v", again)
	}
}

func TestRetiredJobsAndDelete(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.CreateJob(models.Job{ID: "job2"}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	mustBid(t, r, "b1", "job1", "p1")
	if _, err := r.TransitionJob("job1", models.JobStatusCancelled, base); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if got := r.RetiredJobs(base); len(got) != 0 {
		t.Fatalf("expected nothing retired before cutoff, got %d", len(got))
	}
	retired := r.RetiredJobs(base.Add(time.Minute))
	if len(retired) != 1 || retired[0].ID != "job1" {
		t.Fatalf("unexpected retired jobs: %+v", retired)
	}
	if n := r.DeleteJobs([]string{"job1", "job2", "ghost"}); n != 1 {
		t.Fatalf("expected one job deleted, got %d", n)
	}
	if _, err := r.GetJob("job1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected job1 to be gone, got %v", err)
	}
	if _, err := r.GetBid("b1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected bid b1 to be gone, got %v", err)
	}
	if jobs := r.ListJobs(); len(jobs) != 1 || jobs[0].ID != "job2" {
		t.Fatalf("expected only job2 left, got %+v", jobs)
	}
}

func TestAddReviewRecomputesRating(t *testing.T) {
	r := newTestRegistry(t)
	for _, rating := range []int{5, 4, 4} {
		if _, err := r.AddReview(models.Review{JobID: "job1", ReviewerID: "c1", RevieweeID: "p1", Rating: rating}); err != nil {
			t.Fatalf("AddReview: %v", err)
		}
	}
	p, _ := r.GetProvider("p1")
	if p.Rating != 4.3 || p.ReviewCount != 3 {
		t.Fatalf("expected rating 4.3 over 3 reviews, got %.2f over %d", p.Rating, p.ReviewCount)
	}
	if got := r.ListReviews("p1"); len(got) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(got))
	}
	if _, err := r.AddReview(models.Review{JobID: "missing", RevieweeID: "p1", Rating: 5}); !errors.Is(err, models.ErrJobNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}
}

func TestNotificationsNewestFirst(t *testing.T) {
	r := NewRegistry()
	r.AddNotification(models.Notification{ID: "n1", UserID: "u1"})
	r.AddNotification(models.Notification{ID: "n2", UserID: "u2"})
	r.AddNotification(models.Notification{ID: "n3", UserID: "u1"})

	got := r.ListNotifications("u1")
	if len(got) != 2 || got[0].ID != "n3" || got[1].ID != "n1" {
		t.Fatalf("unexpected notifications: %+v", got)
	}
	if err := r.MarkNotificationRead("n1", "u2"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := r.MarkNotificationRead("n1", "u1"); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	if got := r.ListNotifications("u1"); !got[1].Read {
		t.Fatal("expected n1 to be read")
	}
	if err := r.MarkNotificationRead("nx", "u1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMessagesOldestFirst(t *testing.T) {
	r := newTestRegistry(t)
	for _, id := range []string{"m1", "m2"} {
		if _, err := r.AddMessage(models.Message{ID: id, JobID: "job1"}); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}
	got := r.ListMessages("job1")
	if len(got) != 2 || got[0].ID != "m1" {
		t.Fatalf("unexpected messages: %+v", got)
	}
	if _, err := r.AddMessage(models.Message{ID: "m3", JobID: "ghost"}); !errors.Is(err, models.ErrJobNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	r := NewRegistry()
	if err := Seed(r, base); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	jobs := r.ListJobs()
	if len(jobs) != 8 {
		t.Fatalf("expected 8 demo jobs, got %d", len(jobs))
	}
	if jobs[0].ID != "1" {
		t.Fatalf("expected newest demo job first, got %s", jobs[0].ID)
	}
	if len(jobs[0].Bids) != 2 || jobs[0].Bids[0].ProviderName != "Sarah Mokoena" {
		t.Fatalf("unexpected demo bids: %+v", jobs[0].Bids)
	}
	if len(r.ListProviders()) != 6 {
		t.Fatalf("expected 6 demo providers")
	}
}
