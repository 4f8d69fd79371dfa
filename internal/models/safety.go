package models

import "time"

// AlertLevel is the safety monitor's time-risk assessment of an in-progress job.
type AlertLevel string

const (
	AlertSafe     AlertLevel = "safe"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// CheckInStatus tracks whether the monitored party is known to be safe.
type CheckInStatus string

const (
	CheckInPending   CheckInStatus = "pending"
	CheckInConfirmed CheckInStatus = "confirmed"
	CheckInOverdue   CheckInStatus = "overdue"
)

// SafetyState is the externally visible snapshot of a monitored job.
type SafetyState struct {
	JobID                   string        `json:"job_id"`
	AlertLevel              AlertLevel    `json:"alert_level"`
	CheckInStatus           CheckInStatus `json:"check_in_status"`
	EmergencyCheckTriggered bool          `json:"emergency_check_triggered"`
	StartTime               *time.Time    `json:"start_time,omitempty"`
	EstimatedDuration       int           `json:"estimated_duration"`
	ElapsedMinutes          int           `json:"elapsed_minutes"`
	LastEvaluated           time.Time     `json:"last_evaluated"`
}
