package notify

import (
	"sync"

	"pieceJobBack/internal/metrics"
	"pieceJobBack/internal/safety"
)

// MetricsSink counts events by type.
type MetricsSink struct{}

func (MetricsSink) Notify(e safety.Event) {
	metrics.SafetyEventsTotal.WithLabelValues(string(e.Type)).Inc()
}

// Multi fans an event out to every sink in order.
type Multi []safety.Sink

func (m Multi) Notify(e safety.Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(e)
		}
	}
}

// Async delivers events on a background goroutine so the caller never
// blocks. Events are dropped when the buffer is full.
type Async struct {
	sink   safety.Sink
	logger Logger
	queue  chan safety.Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewAsync starts the delivery goroutine for sink.
func NewAsync(sink safety.Sink, buffer int, logger Logger) *Async {
	if buffer <= 0 {
		buffer = 256
	}
	a := &Async{sink: sink, logger: logger, queue: make(chan safety.Event, buffer), done: make(chan struct{})}
	go a.loop()
	return a
}

func (a *Async) Notify(e safety.Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}
	select {
	case a.queue <- e:
	default:
		metrics.NotifyFailuresTotal.WithLabelValues("async_dropped").Inc()
		if a.logger != nil {
			a.logger.Errorf("notify: queue full, dropped %s for job %s", e.Type, e.JobID)
		}
	}
}

// Close stops accepting events and waits until queued ones are delivered.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
}

func (a *Async) loop() {
	defer close(a.done)
	for e := range a.queue {
		a.deliver(e)
	}
}

func (a *Async) deliver(e safety.Event) {
	defer func() {
		if err := recover(); err != nil && a.logger != nil {
			a.logger.Errorf("notify: sink panic on %s: %v", e.Type, err)
		}
	}()
	a.sink.Notify(e)
}
