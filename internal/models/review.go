package models

import "time"

type Review struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	ReviewerID     string    `json:"reviewer_id"`
	ReviewerName   string    `json:"reviewer_name,omitempty"`
	ReviewerAvatar string    `json:"reviewer_avatar,omitempty"`
	RevieweeID     string    `json:"reviewee_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}
