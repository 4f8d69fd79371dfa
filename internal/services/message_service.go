package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pieceJobBack/internal/models"
	"pieceJobBack/internal/repositories"
)

type MessageService struct {
	Registry      *repositories.Registry
	Notifications *NotificationService
	Now           func() time.Time
}

func (s *MessageService) Send(ctx context.Context, msg models.Message) (models.Message, error) {
	msg.Content = strings.TrimSpace(msg.Content)
	switch {
	case msg.SenderID == "":
		return models.Message{}, models.Invalid("sender_id", "is required")
	case msg.ReceiverID == "":
		return models.Message{}, models.Invalid("receiver_id", "is required")
	case msg.Content == "":
		return models.Message{}, models.Invalid("content", "is required")
	}
	switch msg.Type {
	case "":
		msg.Type = models.MessageText
	case models.MessageText, models.MessageImage, models.MessageSystem:
	default:
		return models.Message{}, models.Invalid("type", "unknown message type")
	}

	msg.ID = uuid.NewString()
	msg.Read = false
	msg.CreatedAt = clock(s.Now)
	stored, err := s.Registry.AddMessage(msg)
	if err != nil {
		return models.Message{}, err
	}
	if s.Notifications != nil {
		preview := stored.Content
		if len([]rune(preview)) > 80 {
			preview = string([]rune(preview)[:80]) + "..."
		}
		s.Notifications.Notify(stored.ReceiverID, models.NotificationMessage, "New Message", preview,
			map[string]string{"job_id": stored.JobID, "message_id": stored.ID, "sender_id": stored.SenderID})
	}
	return stored, nil
}

func (s *MessageService) ListForJob(ctx context.Context, jobID string) ([]models.Message, error) {
	if _, err := s.Registry.GetJob(jobID); err != nil {
		return nil, err
	}
	return s.Registry.ListMessages(jobID), nil
}
