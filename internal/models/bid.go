package models

import "time"

// BidStatus is the lifecycle state of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

type Bid struct {
	ID                string    `json:"id"`
	JobID             string    `json:"job_id"`
	ProviderID        string    `json:"provider_id"`
	ProviderName      string    `json:"provider_name,omitempty"`
	ProviderAvatar    string    `json:"provider_avatar,omitempty"`
	Amount            string    `json:"amount"`
	Message           string    `json:"message"`
	EstimatedDuration int       `json:"estimated_duration"`
	Status            BidStatus `json:"status"`
	TimeSubmitted     string    `json:"time_submitted"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// BidDraft is the provider input for submitting a bid.
type BidDraft struct {
	JobID             string `json:"job_id"`
	ProviderID        string `json:"provider_id"`
	Amount            string `json:"amount"`
	Message           string `json:"message"`
	EstimatedDuration int    `json:"estimated_duration"`
}
