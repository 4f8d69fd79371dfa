package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JobsPostedTotal counts jobs created, by category.
	JobsPostedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "piecejob_jobs_posted_total",
			Help: "Total number of jobs posted",
		},
		[]string{"category"},
	)

	// JobTransitionsTotal counts job status transitions, by target status.
	JobTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "piecejob_job_transitions_total",
			Help: "Total number of job status transitions",
		},
		[]string{"status"},
	)

	BidsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "piecejob_bids_submitted_total",
			Help: "Total number of bids submitted",
		},
	)

	BidsAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "piecejob_bids_accepted_total",
			Help: "Total number of bids accepted",
		},
	)

	// SafetyEventsTotal counts safety monitor events, by event type.
	SafetyEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "piecejob_safety_events_total",
			Help: "Total number of safety monitor events",
		},
		[]string{"type"},
	)

	MonitoredJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "piecejob_monitored_jobs",
			Help: "Number of in-progress jobs under safety monitoring",
		},
	)

	JobsArchivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "piecejob_jobs_archived_total",
			Help: "Total number of retired jobs moved to the archive",
		},
	)

	// NotifyFailuresTotal counts failed outbound deliveries, by channel.
	NotifyFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "piecejob_notify_failures_total",
			Help: "Total number of failed notification deliveries",
		},
		[]string{"channel"},
	)
)
