package repositories

import (
	"maps"

	"pieceJobBack/internal/models"
)

// AddNotification stores n at the head of the inbox.
func (r *Registry) AddNotification(n models.Notification) models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.Data = maps.Clone(n.Data)
	r.notifications = append([]models.Notification{n}, r.notifications...)
	return n
}

// ListNotifications returns the user's notifications, newest first.
func (r *Registry) ListNotifications(userID string) []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Data = maps.Clone(n.Data)
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationRead flags a notification as read. Only its recipient may do so.
func (r *Registry) MarkNotificationRead(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notifications {
		if r.notifications[i].ID != id {
			continue
		}
		if r.notifications[i].UserID != userID {
			return models.ErrForbidden
		}
		r.notifications[i].Read = true
		return nil
	}
	return models.ErrNotFound
}

// AddMessage appends a chat message.
func (r *Registry) AddMessage(m models.Message) (models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.JobID != "" {
		if _, ok := r.jobs[m.JobID]; !ok {
			return models.Message{}, models.ErrJobNotFound
		}
	}
	r.messages = append(r.messages, m)
	return m, nil
}

// ListMessages returns the messages of a job, oldest first.
func (r *Registry) ListMessages(jobID string) []models.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Message{}
	for _, m := range r.messages {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out
}
