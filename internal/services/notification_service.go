package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

// Pusher delivers a realtime payload to a connected user.
type Pusher interface {
	Push(userID string, payload interface{})
}

type NotificationService struct {
	Registry *repositories.Registry
	Realtime Pusher
	Now      func() time.Time
}

type realtimeNotification struct {
	Channel      string              `json:"channel"`
	Notification models.Notification `json:"notification"`
}

// Notify stores an in-app notification and pushes it to the user when connected.
func (s *NotificationService) Notify(userID string, kind models.NotificationType, title, message string, data map[string]string) models.Notification {
	n := s.Registry.AddNotification(models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: clock(s.Now),
	})
	if s.Realtime != nil {
		s.Realtime.Push(userID, realtimeNotification{Channel: "notifications", Notification: n})
	}
	return n
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, models.ErrUnauthorized
	}
	return s.Registry.ListNotifications(userID), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if userID == "" {
		return models.ErrUnauthorized
	}
	return s.Registry.MarkNotificationRead(id, userID)
}
