package notify

import (
	"fmt"

	"github.com/google/uuid"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/safety"
)

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	AddNotification(n models.Notification) models.Notification
}

// InboxSink turns safety events into security_alert notifications.
// Repeating emergency alerts are not written to the inbox; the level change
// to critical already is.
type InboxSink struct {
	Store NotificationStore
}

func (s InboxSink) Notify(e safety.Event) {
	for _, n := range inboxNotifications(e) {
		s.Store.AddNotification(n)
	}
}

func inboxNotifications(e safety.Event) []models.Notification {
	data := map[string]string{"job_id": e.JobID, "type": string(e.Type)}
	build := func(userID, title, message string) models.Notification {
		return models.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      models.NotificationSecurityAlert,
			Title:     title,
			Message:   message,
			Data:      data,
			CreatedAt: e.At,
		}
	}

	switch e.Type {
	case safety.EventEmergencyCheckRequired:
		hours := int(e.Elapsed.Hours())
		return []models.Notification{build(e.CustomerID, "Emergency Check Required",
			fmt.Sprintf("Job %q has been running for %d+ hours. Please confirm safety status.", e.JobTitle, hours))}
	case safety.EventAlertLevelChanged:
		switch e.Level {
		case models.AlertWarning:
			return []models.Notification{build(e.CustomerID, "Job Running Over Time",
				fmt.Sprintf("Job %q is taking longer than estimated.", e.JobTitle))}
		case models.AlertCritical:
			return []models.Notification{build(e.CustomerID, "Critical Safety Alert",
				fmt.Sprintf("Job %q is well past its estimated duration. Please confirm you are safe.", e.JobTitle))}
		}
	case safety.EventSafetyConfirmed:
		userID := e.UserID
		if userID == "" {
			userID = e.CustomerID
		}
		return []models.Notification{build(userID, "Safety Confirmed",
			"Thank you for confirming your safety. Monitoring continues.")}
	case safety.EventEmergencyHelpRequested:
		out := []models.Notification{build(e.CustomerID, "Emergency Help Requested",
			fmt.Sprintf("Emergency help was requested for job %q. Security has been alerted.", e.JobTitle))}
		if e.ProviderID != "" && e.ProviderID != e.CustomerID {
			out = append(out, build(e.ProviderID, "Emergency Help Requested",
				fmt.Sprintf("Emergency help was requested for job %q.", e.JobTitle)))
		}
		return out
	}
	return nil
}
