package models

import "time"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationBidReceived   NotificationType = "bid_received"
	NotificationBidAccepted   NotificationType = "bid_accepted"
	NotificationJobStarted    NotificationType = "job_started"
	NotificationJobCompleted  NotificationType = "job_completed"
	NotificationMessage       NotificationType = "message"
	NotificationSecurityAlert NotificationType = "security_alert"
)

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}
