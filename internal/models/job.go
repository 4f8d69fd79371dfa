package models

import "time"

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPosted     JobStatus = "posted"
	JobStatusConfirmed  JobStatus = "confirmed"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Urgency is the customer's self-reported priority tier.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Valid reports whether u is one of the known tiers.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

type Job struct {
	ID                string       `json:"id"`
	CustomerID        string       `json:"customer_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Category          string       `json:"category"`
	Location          string       `json:"location"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	Images            []string     `json:"images"`
	Budget            string       `json:"budget"`
	EstimatedDuration int          `json:"estimated_duration"`
	Urgency           Urgency      `json:"urgency"`
	Status            JobStatus    `json:"status"`
	Bids              []Bid        `json:"bids"`
	ProviderID        string       `json:"provider_id,omitempty"`
	TimePosted        string       `json:"time_posted"`
	Distance          string       `json:"distance,omitempty"`
	PostedAt          time.Time    `json:"posted_at"`
	StartTime         *time.Time   `json:"start_time,omitempty"`
	CompletedTime     *time.Time   `json:"completed_time,omitempty"`
	CancelledTime     *time.Time   `json:"cancelled_time,omitempty"`
}

// JobDraft is the client input for posting a job.
type JobDraft struct {
	CustomerID        string       `json:"customer_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Category          string       `json:"category"`
	Location          string       `json:"location"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	Images            []string     `json:"images"`
	Budget            string       `json:"budget"`
	EstimatedDuration int          `json:"estimated_duration"`
	Urgency           Urgency      `json:"urgency"`
}

// Terminal reports whether no further transitions are possible.
func (j Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusCancelled
}

// RetiredAt returns the moment the job reached a terminal state.
func (j Job) RetiredAt() *time.Time {
	switch j.Status {
	case JobStatusCompleted:
		return j.CompletedTime
	case JobStatusCancelled:
		return j.CancelledTime
	}
	return nil
}
