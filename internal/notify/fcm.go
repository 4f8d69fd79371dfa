package notify

import (
	"context"
	"time"

	"firebase.google.com/go/messaging"

	"pieceJobBack/internal/metrics"
	"pieceJobBack/internal/safety"
)

// Logger is a minimal logger interface required by sinks.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// MessageSender is the subset of the FCM client used for pushes.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSink pushes urgent safety events to the user's FCM topic ("user_<id>").
type FCMSink struct {
	Client  MessageSender
	Logger  Logger
	Timeout time.Duration
}

// UserTopic is the FCM topic a user's devices subscribe to.
func UserTopic(userID string) string {
	return "user_" + userID
}

func (s FCMSink) Notify(e safety.Event) {
	for _, n := range inboxNotifications(e) {
		if n.UserID == "" {
			continue
		}
		if err := s.send(UserTopic(n.UserID), n.Title, n.Message, n.Data); err != nil {
			metrics.NotifyFailuresTotal.WithLabelValues("fcm").Inc()
			if s.Logger != nil {
				s.Logger.Errorf("fcm: push %s to %s failed: %v", e.Type, n.UserID, err)
			}
		}
	}
}

func (s FCMSink) send(topic, title, body string, data map[string]string) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := s.Client.Send(ctx, buildMessage(topic, title, body, data))
	return err
}

func buildMessage(topic, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}
}
