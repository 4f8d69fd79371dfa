package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/pat"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
	"pieceJobBack/internal/safety"
	"pieceJobBack/internal/services"
)

type testServer struct {
	registry *repositories.Registry
	monitor  *safety.Monitor
	mux      http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	reg := repositories.NewRegistry()
	mon := safety.NewMonitor(safety.DefaultConfig(), nil, nil)
	mon.SetStatusLookup(reg.JobStatus)

	notifications := &services.NotificationService{Registry: reg, Now: clock}
	jobs := &services.JobService{Registry: reg, Monitor: mon, Notifications: notifications, Images: uploaderFunc(func(key string) string {
		return "https://cdn.test/" + key
	}), DefaultRadiusKm: 25, Now: clock}
	bids := &services.BidService{Registry: reg, Notifications: notifications, Now: clock}
	messages := &services.MessageService{Registry: reg, Notifications: notifications, Now: clock}
	providers := &services.ProviderService{Registry: reg, DefaultRadiusKm: 25}
	reviews := &services.ReviewService{Registry: reg, Now: clock}
	safetySvc := &services.SafetyService{Registry: reg, Monitor: mon, Now: clock}

	jh := &JobHandler{Service: jobs, Bids: bids, Messages: messages}
	bh := &BidHandler{Service: bids}
	ph := &ProviderHandler{Service: providers, Reviews: reviews}
	nh := &NotificationHandler{Service: notifications}
	sh := &SafetyHandler{Service: safetySvc}

	mux := pat.New()
	mux.Post("/job", http.HandlerFunc(jh.CreateJob))
	mux.Get("/job", http.HandlerFunc(jh.ListJobs))
	mux.Get("/job/:id", http.HandlerFunc(jh.GetJob))
	mux.Post("/job/:id/start", http.HandlerFunc(jh.StartJob))
	mux.Post("/job/:id/complete", http.HandlerFunc(jh.CompleteJob))
	mux.Post("/job/:id/images", http.HandlerFunc(jh.UploadImage))
	mux.Get("/job/:id/bids", http.HandlerFunc(jh.ListBids))
	mux.Post("/bid", http.HandlerFunc(bh.SubmitBid))
	mux.Post("/bid/:id/accept", http.HandlerFunc(bh.AcceptBid))
	mux.Get("/provider", http.HandlerFunc(ph.ListProviders))
	mux.Get("/provider/nearby", http.HandlerFunc(ph.Nearby))
	mux.Get("/provider/:id", http.HandlerFunc(ph.GetProvider))
	mux.Put("/provider/:id", http.HandlerFunc(ph.UpsertProvider))
	mux.Get("/notifications", http.HandlerFunc(nh.List))
	mux.Get("/safety/:job_id", http.HandlerFunc(sh.State))
	mux.Post("/safety/:job_id/confirm", http.HandlerFunc(sh.Confirm))

	withUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-User-ID"); id != "" {
			r = r.WithContext(WithUserID(r.Context(), id))
		}
		mux.ServeHTTP(w, r)
	})

	reg.UpsertProvider(models.Provider{ID: "provider1", Name: "Sarah Mokoena",
		Coordinates: &models.Coordinates{Latitude: -26.1076, Longitude: 28.0567}, IsOnline: true})
	return &testServer{registry: reg, monitor: mon, mux: withUser}
}

type uploaderFunc func(key string) string

func (f uploaderFunc) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	return f(key), nil
}

func (s *testServer) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func jobDraft() models.JobDraft {
	return models.JobDraft{
		Title:             "Deep Clean 3-Bedroom House",
		Description:       "Kitchen, bathrooms, and all living areas.",
		Category:          "Cleaning",
		Location:          "Sandton, Johannesburg",
		Coordinates:       &models.Coordinates{Latitude: -26.1076, Longitude: 28.0567},
		Budget:            "R800 - R1200",
		EstimatedDuration: 4,
	}
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/job", "customer1", jobDraft())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job: status %d body %s", rec.Code, rec.Body)
	}
	job := decode[models.Job](t, rec)
	if job.CustomerID != "customer1" || job.Status != models.JobStatusPosted {
		t.Fatalf("unexpected job %+v", job)
	}

	rec = s.do(t, http.MethodPost, "/bid", "provider1", models.BidDraft{
		JobID: job.ID, Amount: "R950", Message: "Available tomorrow", EstimatedDuration: 4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit bid: status %d body %s", rec.Code, rec.Body)
	}
	bid := decode[models.Bid](t, rec)
	if bid.ProviderID != "provider1" || bid.Status != models.BidStatusPending {
		t.Fatalf("unexpected bid %+v", bid)
	}

	if rec := s.do(t, http.MethodPost, "/bid/"+bid.ID+"/accept", "provider1", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("accept by non-owner: status %d", rec.Code)
	}
	rec = s.do(t, http.MethodPost, "/bid/"+bid.ID+"/accept", "customer1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: status %d body %s", rec.Code, rec.Body)
	}
	if got := decode[models.Job](t, rec); got.Status != models.JobStatusConfirmed || got.ProviderID != "provider1" {
		t.Fatalf("accepted job %+v", got)
	}

	rec = s.do(t, http.MethodPost, "/job/"+job.ID+"/start", "provider1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start: status %d body %s", rec.Code, rec.Body)
	}
	if s.monitor.Tracked() != 1 {
		t.Fatalf("expected the started job to be monitored")
	}

	rec = s.do(t, http.MethodGet, "/safety/"+job.ID, "customer1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("safety state: status %d body %s", rec.Code, rec.Body)
	}
	if st := decode[models.SafetyState](t, rec); st.AlertLevel != models.AlertSafe {
		t.Fatalf("safety state %+v", st)
	}
	if rec := s.do(t, http.MethodGet, "/safety/"+job.ID, "stranger", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger safety state: status %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/job/"+job.ID+"/complete", "customer1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status %d body %s", rec.Code, rec.Body)
	}
	if s.monitor.Tracked() != 0 {
		t.Fatalf("completed job still monitored")
	}
	if rec := s.do(t, http.MethodPost, "/job/"+job.ID+"/complete", "customer1", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second complete: status %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/notifications", "customer1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("notifications: status %d", rec.Code)
	}
	if items := decode[[]models.Notification](t, rec); len(items) == 0 {
		t.Fatalf("expected notifications for the customer")
	}
}

func TestStatusMapping(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		user   string
		body   interface{}
		want   int
	}{
		{"anonymous post", http.MethodPost, "/job", "", jobDraft(), http.StatusUnauthorized},
		{"missing title", http.MethodPost, "/job", "customer1", models.JobDraft{Description: "x"}, http.StatusBadRequest},
		{"unknown job", http.MethodGet, "/job/nope", "", nil, http.StatusNotFound},
		{"unknown provider", http.MethodGet, "/provider/nope", "", nil, http.StatusNotFound},
		{"bad radius", http.MethodGet, "/job?lat=-26.1&lon=28.0&radius=-5", "", nil, http.StatusBadRequest},
		{"NaN radius", http.MethodGet, "/job?lat=-26.1&lon=28.0&radius=NaN", "", nil, http.StatusBadRequest},
		{"infinite radius", http.MethodGet, "/provider?lat=-26.1&lon=28.0&radius=+Inf", "", nil, http.StatusBadRequest},
		{"bad lat", http.MethodGet, "/job?lat=abc&lon=28.0", "", nil, http.StatusBadRequest},
		{"nearby needs origin", http.MethodGet, "/provider/nearby", "", nil, http.StatusBadRequest},
		{"bid on unknown job", http.MethodPost, "/bid", "provider1", models.BidDraft{JobID: "nope", Amount: "R100", Message: "hi", EstimatedDuration: 1}, http.StatusNotFound},
		{"profile of someone else", http.MethodPut, "/provider/provider1", "provider2", models.Provider{Name: "x"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.user, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d (body %s)", rec.Code, tc.want, rec.Body)
			}
			if rec.Code >= 400 {
				body := decode[map[string]string](t, rec)
				if body["error"] == "" {
					t.Fatalf("error body missing message: %s", rec.Body)
				}
			}
		})
	}
}

func TestListJobsRankedByDistance(t *testing.T) {
	s := newTestServer(t)

	near := jobDraft()
	far := jobDraft()
	far.Title = "Pretoria garden"
	far.Coordinates = &models.Coordinates{Latitude: -25.7479, Longitude: 28.2293}
	for _, d := range []models.JobDraft{far, near} {
		if rec := s.do(t, http.MethodPost, "/job", "customer1", d); rec.Code != http.StatusCreated {
			t.Fatalf("create: %d %s", rec.Code, rec.Body)
		}
	}

	rec := s.do(t, http.MethodGet, "/job?lat=-26.1076&lon=28.0567&radius=25", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	jobs := decode[[]models.Job](t, rec)
	if len(jobs) != 1 || jobs[0].Title != near.Title {
		t.Fatalf("expected only the Sandton job within 25km, got %+v", jobs)
	}

	rec = s.do(t, http.MethodGet, "/job?lat=-26.1076&lon=28.0567&radius=100", "", nil)
	jobs = decode[[]models.Job](t, rec)
	if len(jobs) != 2 || jobs[0].Title != near.Title {
		t.Fatalf("expected nearest first, got %+v", jobs)
	}
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/job", "customer1", jobDraft())
	job := decode[models.Job](t, rec)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "kitchen.JPG")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("\xff\xd8\xff\xe0fake-jpeg"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/job/%s/images", job.ID), &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", "customer1")
	out := httptest.NewRecorder()
	s.mux.ServeHTTP(out, req)

	if out.Code != http.StatusOK {
		t.Fatalf("upload: status %d body %s", out.Code, out.Body)
	}
	got := decode[models.Job](t, out)
	if len(got.Images) != 1 {
		t.Fatalf("expected one image, got %v", got.Images)
	}
}

func TestWriteServiceErrorValidationField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, nil, fmt.Errorf("wrapped: %w", models.Invalid("budget", "is required")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["field"] != "budget" {
		t.Fatalf("field = %q", body["field"])
	}

	var logged bytes.Buffer
	rec = httptest.NewRecorder()
	writeServiceError(rec, log.New(&logged, "", 0), errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(logged.String(), "boom") {
		t.Fatalf("expected the error in the handler log, got %q", logged.String())
	}
	if body := decode[map[string]string](t, rec); body["error"] != "internal server error" {
		t.Fatalf("internal error leaked to the client: %q", body["error"])
	}
}
