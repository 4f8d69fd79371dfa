package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/messaging"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/safety"
)

type memStore struct {
	mu    sync.Mutex
	items []models.Notification
}

func (m *memStore) AddNotification(n models.Notification) models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
	return n
}

var at = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func event(kind safety.EventType, level models.AlertLevel) safety.Event {
	return safety.Event{Type: kind, JobID: "j1", JobTitle: "Deep Clean", CustomerID: "c1", ProviderID: "p1", Level: level, Elapsed: 4*time.Hour + 5*time.Minute, At: at}
}

func TestInboxSink(t *testing.T) {
	cases := []struct {
		name  string
		event safety.Event
		users []string
		title string
	}{
		{"emergency check", event(safety.EventEmergencyCheckRequired, models.AlertSafe), []string{"c1"}, "Emergency Check Required"},
		{"warning", event(safety.EventAlertLevelChanged, models.AlertWarning), []string{"c1"}, "Job Running Over Time"},
		{"critical", event(safety.EventAlertLevelChanged, models.AlertCritical), []string{"c1"}, "Critical Safety Alert"},
		{"back to safe", event(safety.EventAlertLevelChanged, models.AlertSafe), nil, ""},
		{"repeating alert", event(safety.EventEmergencyAlert, models.AlertCritical), nil, ""},
		{"help", event(safety.EventEmergencyHelpRequested, models.AlertSafe), []string{"c1", "p1"}, "Emergency Help Requested"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{}
			InboxSink{Store: store}.Notify(tc.event)
			if len(store.items) != len(tc.users) {
				t.Fatalf("expected %d notifications, got %d", len(tc.users), len(store.items))
			}
			for i, n := range store.items {
				if n.UserID != tc.users[i] || n.Title != tc.title {
					t.Fatalf("unexpected notification %+v", n)
				}
				if n.Type != models.NotificationSecurityAlert || n.Data["job_id"] != "j1" {
					t.Fatalf("unexpected type or data: %+v", n)
				}
			}
		})
	}
}

func TestInboxSafetyConfirmedGoesToConfirmingUser(t *testing.T) {
	store := &memStore{}
	e := event(safety.EventSafetyConfirmed, models.AlertSafe)
	e.UserID = "p1"
	InboxSink{Store: store}.Notify(e)
	if len(store.items) != 1 || store.items[0].UserID != "p1" {
		t.Fatalf("unexpected notifications %+v", store.items)
	}
}

func TestEmergencyCheckMessage(t *testing.T) {
	ns := inboxNotifications(event(safety.EventEmergencyCheckRequired, models.AlertSafe))
	want := `Job "Deep Clean" has been running for 4+ hours. Please confirm safety status.`
	if ns[0].Message != want {
		t.Fatalf("expected %q got %q", want, ns[0].Message)
	}
}

type fakeSender struct {
	mu   sync.Mutex
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return "id", f.err
}

func TestFCMSinkTopics(t *testing.T) {
	sender := &fakeSender{}
	FCMSink{Client: sender}.Notify(event(safety.EventEmergencyHelpRequested, models.AlertSafe))
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 pushes, got %d", len(sender.sent))
	}
	if sender.sent[0].Topic != "user_c1" || sender.sent[1].Topic != "user_p1" {
		t.Fatalf("unexpected topics %s, %s", sender.sent[0].Topic, sender.sent[1].Topic)
	}
	if sender.sent[0].Android.Priority != "high" {
		t.Fatalf("expected high priority android push")
	}
}

type captureLogger struct{ errors int }

func (l *captureLogger) Infof(string, ...interface{})  {}
func (l *captureLogger) Errorf(string, ...interface{}) { l.errors++ }

func TestFCMSinkLogsFailures(t *testing.T) {
	logger := &captureLogger{}
	FCMSink{Client: &fakeSender{err: errors.New("unavailable")}, Logger: logger}.Notify(event(safety.EventEmergencyCheckRequired, models.AlertSafe))
	if logger.errors != 1 {
		t.Fatalf("expected one logged failure, got %d", logger.errors)
	}
}

type fakePusher struct{ users []string }

func (f *fakePusher) Push(userID string, _ interface{}) { f.users = append(f.users, userID) }

func TestWSSinkDeduplicatesRecipients(t *testing.T) {
	p := &fakePusher{}
	e := event(safety.EventSafetyConfirmed, models.AlertSafe)
	e.UserID = "c1"
	WSSink{Hub: p}.Notify(e)
	if len(p.users) != 2 || p.users[0] != "c1" || p.users[1] != "p1" {
		t.Fatalf("unexpected recipients %v", p.users)
	}
}

func TestMultiAndAsync(t *testing.T) {
	var mu sync.Mutex
	var got []safety.EventType
	record := safety.SinkFunc(func(e safety.Event) {
		mu.Lock()
		got = append(got, e.Type)
		mu.Unlock()
	})
	boom := safety.SinkFunc(func(safety.Event) { panic("boom") })

	async := NewAsync(Multi{record, MetricsSink{}}, 8, nil)
	async.Notify(event(safety.EventEmergencyAlert, models.AlertCritical))
	async.Notify(event(safety.EventSafetyConfirmed, models.AlertSafe))
	async.Close()
	async.Notify(event(safety.EventEmergencyAlert, models.AlertCritical))

	if len(got) != 2 || got[0] != safety.EventEmergencyAlert || got[1] != safety.EventSafetyConfirmed {
		t.Fatalf("unexpected deliveries %v", got)
	}

	panicky := NewAsync(boom, 1, &captureLogger{})
	panicky.Notify(event(safety.EventEmergencyAlert, models.AlertCritical))
	panicky.Close()
}
