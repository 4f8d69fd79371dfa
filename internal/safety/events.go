package safety

import (
	"time"

	"pieceJobBack/internal/models"
)

// EventType names a safety monitor event.
type EventType string

const (
	EventAlertLevelChanged      EventType = "alert_level_changed"
	EventEmergencyCheckRequired EventType = "emergency_check_required"
	EventEmergencyAlert         EventType = "emergency_alert"
	EventSafetyConfirmed        EventType = "safety_confirmed"
	EventEmergencyHelpRequested EventType = "emergency_help_requested"
)

// Event is emitted by the Monitor. UserID is set for events triggered by a
// person (confirmations and help requests).
type Event struct {
	Type       EventType         `json:"type"`
	JobID      string            `json:"job_id"`
	JobTitle   string            `json:"job_title"`
	CustomerID string            `json:"customer_id"`
	ProviderID string            `json:"provider_id,omitempty"`
	UserID     string            `json:"user_id,omitempty"`
	Level      models.AlertLevel `json:"level"`
	Previous   models.AlertLevel `json:"previous,omitempty"`
	Elapsed    time.Duration     `json:"elapsed"`
	At         time.Time         `json:"at"`
}

// Sink consumes monitor events. Notify is called without the monitor lock held.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Callbacks maps events onto per-kind handlers. Nil handlers are skipped.
type Callbacks struct {
	OnAlertLevelChanged      func(jobID string, level models.AlertLevel)
	OnEmergencyCheckRequired func(jobID string)
	OnEmergencyAlert         func(jobID string)
	OnSafetyConfirmed        func(jobID string)
	OnEmergencyHelpRequested func(jobID string)
}

func (c Callbacks) Notify(e Event) {
	switch e.Type {
	case EventAlertLevelChanged:
		if c.OnAlertLevelChanged != nil {
			c.OnAlertLevelChanged(e.JobID, e.Level)
		}
	case EventEmergencyCheckRequired:
		if c.OnEmergencyCheckRequired != nil {
			c.OnEmergencyCheckRequired(e.JobID)
		}
	case EventEmergencyAlert:
		if c.OnEmergencyAlert != nil {
			c.OnEmergencyAlert(e.JobID)
		}
	case EventSafetyConfirmed:
		if c.OnSafetyConfirmed != nil {
			c.OnSafetyConfirmed(e.JobID)
		}
	case EventEmergencyHelpRequested:
		if c.OnEmergencyHelpRequested != nil {
			c.OnEmergencyHelpRequested(e.JobID)
		}
	}
}

type nopSink struct{}

func (nopSink) Notify(Event) {}
