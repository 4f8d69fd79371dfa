package models

import "time"

// MessageType is the payload kind of a chat message.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageSystem MessageType = "system"
)

type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"sender_id"`
	ReceiverID string      `json:"receiver_id"`
	JobID      string      `json:"job_id,omitempty"`
	Content    string      `json:"content"`
	Type       MessageType `json:"type"`
	Read       bool        `json:"read"`
	CreatedAt  time.Time   `json:"created_at"`
}
