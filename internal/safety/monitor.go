package safety

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pieceJobBack/internal/models"
)

// Logger is a minimal logger interface required by the monitor.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ErrNotMonitored is returned for manual actions on a job that is not in progress.
var ErrNotMonitored = fmt.Errorf("job is not monitored: %w", models.ErrInvalidState)

// Target describes an in-progress job handed to the monitor.
type Target struct {
	JobID             string
	Title             string
	CustomerID        string
	ProviderID        string
	StartTime         *time.Time
	EstimatedDuration int // hours
}

// TargetFromJob builds a Target from a job record.
func TargetFromJob(job models.Job) Target {
	return Target{
		JobID:             job.ID,
		Title:             job.Title,
		CustomerID:        job.CustomerID,
		ProviderID:        job.ProviderID,
		StartTime:         job.StartTime,
		EstimatedDuration: job.EstimatedDuration,
	}
}

// StatusFunc reports the current status of a job and whether it exists.
type StatusFunc func(jobID string) (models.JobStatus, bool)

type tracked struct {
	target         Target
	level          models.AlertLevel
	checkIn        models.CheckInStatus
	emergencyCheck bool
	elapsed        time.Duration
	lastEvaluated  time.Time
}

// Monitor watches in-progress jobs from one shared ticker and escalates
// alerts as elapsed time passes the estimated duration.
type Monitor struct {
	cfg    Config
	sink   Sink
	logger Logger

	mu     sync.Mutex
	jobs   map[string]*tracked
	status StatusFunc
}

// NewMonitor creates a monitor. A nil sink discards events.
func NewMonitor(cfg Config, sink Sink, logger Logger) *Monitor {
	if sink == nil {
		sink = nopSink{}
	}
	return &Monitor{cfg: cfg.withDefaults(), sink: sink, logger: logger, jobs: make(map[string]*tracked)}
}

// SetStatusLookup makes the monitor consult the job store. Jobs that are not
// in progress are never tracked and are dropped at evaluation, and their
// pending timer events are discarded before delivery.
func (m *Monitor) SetStatusLookup(fn StatusFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = fn
}

// inProgress must be called with m.mu held.
func (m *Monitor) inProgress(jobID string) bool {
	if m.status == nil {
		return true
	}
	st, ok := m.status(jobID)
	return ok && st == models.JobStatusInProgress
}

// Run evaluates all tracked jobs on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evaluate(time.Now())
		}
	}
}

// Track starts monitoring a job and reports whether it is now tracked.
// Tracking an already tracked job replaces its target but keeps the one-shot
// emergency check flag. A job that has already left in-progress is refused.
func (m *Monitor) Track(t Target, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inProgress(t.JobID) {
		delete(m.jobs, t.JobID)
		return false
	}
	if existing, ok := m.jobs[t.JobID]; ok {
		existing.target = t
		return true
	}
	m.jobs[t.JobID] = &tracked{
		target:        t,
		level:         models.AlertSafe,
		checkIn:       models.CheckInPending,
		lastEvaluated: now,
	}
	if m.logger != nil {
		m.logger.Infof("safety: tracking job %s (estimated %dh)", t.JobID, t.EstimatedDuration)
	}
	return true
}

// Untrack stops monitoring a job. It reports whether the job was tracked.
func (m *Monitor) Untrack(jobID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return false
	}
	delete(m.jobs, jobID)
	if m.logger != nil {
		m.logger.Infof("safety: stopped tracking job %s", jobID)
	}
	return true
}

// Tracked returns the number of monitored jobs.
func (m *Monitor) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// Evaluate re-assesses every tracked job at now and delivers the resulting
// events once the lock is released.
func (m *Monitor) Evaluate(now time.Time) {
	m.mu.Lock()
	var events []Event
	for id, job := range m.jobs {
		if !m.inProgress(id) {
			delete(m.jobs, id)
			if m.logger != nil {
				m.logger.Infof("safety: dropped job %s, no longer in progress", id)
			}
			continue
		}
		events = append(events, m.evaluateLocked(job, now)...)
	}
	m.mu.Unlock()

	m.deliverActive(events)
}

// deliverActive delivers timer events for jobs that are still tracked and
// in progress at delivery time.
func (m *Monitor) deliverActive(events []Event) {
	for _, e := range events {
		m.mu.Lock()
		_, ok := m.jobs[e.JobID]
		active := ok && m.inProgress(e.JobID)
		m.mu.Unlock()
		if active {
			m.sink.Notify(e)
		}
	}
}

func (m *Monitor) evaluateLocked(job *tracked, now time.Time) []Event {
	elapsed := elapsedSince(job.target.StartTime, now)
	job.elapsed = elapsed
	job.lastEvaluated = now

	level, checkIn := assess(elapsed, job.target.EstimatedDuration, m.cfg.CriticalGrace)
	previous := job.level
	job.level = level
	job.checkIn = checkIn

	var events []Event
	if elapsed >= m.cfg.EmergencyCheckAfter && !job.emergencyCheck {
		job.emergencyCheck = true
		events = append(events, newEvent(EventEmergencyCheckRequired, job, now))
	}
	if level != previous {
		e := newEvent(EventAlertLevelChanged, job, now)
		e.Previous = previous
		events = append(events, e)
	}
	if level == models.AlertCritical {
		events = append(events, newEvent(EventEmergencyAlert, job, now))
	}
	return events
}

// assess maps elapsed time against the estimate onto an alert level.
func assess(elapsed time.Duration, estimatedHours int, grace time.Duration) (models.AlertLevel, models.CheckInStatus) {
	estimated := time.Duration(estimatedHours) * time.Hour
	switch {
	case elapsed > estimated+grace:
		return models.AlertCritical, models.CheckInOverdue
	case elapsed > estimated:
		return models.AlertWarning, models.CheckInOverdue
	default:
		return models.AlertSafe, models.CheckInConfirmed
	}
}

func elapsedSince(start *time.Time, now time.Time) time.Duration {
	if start == nil || start.IsZero() {
		return 0
	}
	if d := now.Sub(*start); d > 0 {
		return d
	}
	return 0
}

// ConfirmSafety records that the monitored party is safe. The level resets
// to safe until the next evaluation.
func (m *Monitor) ConfirmSafety(jobID, userID string, now time.Time) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return ErrNotMonitored
	}
	previous := job.level
	job.level = models.AlertSafe
	job.checkIn = models.CheckInConfirmed
	confirmed := newEvent(EventSafetyConfirmed, job, now)
	confirmed.UserID = userID
	events := []Event{confirmed}
	if previous != models.AlertSafe {
		changed := newEvent(EventAlertLevelChanged, job, now)
		changed.Previous = previous
		events = append(events, changed)
	}
	m.mu.Unlock()

	m.deliver(events)
	return nil
}

// RequestEmergencyHelp raises an emergency immediately, independent of the
// timer. Jobs that are not tracked are reported using t as given.
func (m *Monitor) RequestEmergencyHelp(t Target, userID string, now time.Time) {
	m.mu.Lock()
	job, ok := m.jobs[t.JobID]
	if !ok {
		job = &tracked{target: t, level: models.AlertSafe, elapsed: elapsedSince(t.StartTime, now)}
	}
	e := newEvent(EventEmergencyHelpRequested, job, now)
	e.UserID = userID
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Infof("safety: emergency help requested for job %s by %s", t.JobID, userID)
	}
	m.deliver([]Event{e})
}

// State returns the current snapshot for a tracked job.
func (m *Monitor) State(jobID string) (models.SafetyState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return models.SafetyState{}, false
	}
	return models.SafetyState{
		JobID:                   jobID,
		AlertLevel:              job.level,
		CheckInStatus:           job.checkIn,
		EmergencyCheckTriggered: job.emergencyCheck,
		StartTime:               job.target.StartTime,
		EstimatedDuration:       job.target.EstimatedDuration,
		ElapsedMinutes:          int(job.elapsed / time.Minute),
		LastEvaluated:           job.lastEvaluated,
	}, true
}

func (m *Monitor) deliver(events []Event) {
	for _, e := range events {
		m.sink.Notify(e)
	}
}

func newEvent(kind EventType, job *tracked, now time.Time) Event {
	return Event{
		Type:       kind,
		JobID:      job.target.JobID,
		JobTitle:   job.target.Title,
		CustomerID: job.target.CustomerID,
		ProviderID: job.target.ProviderID,
		Level:      job.level,
		Elapsed:    job.elapsed,
		At:         now,
	}
}
