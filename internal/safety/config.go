package safety

import "time"

// Config holds the monitor cadence and escalation thresholds.
type Config struct {
	// Tick is how often tracked jobs are re-evaluated.
	Tick time.Duration
	// EmergencyCheckAfter is the elapsed time that triggers the one-shot
	// emergency check.
	EmergencyCheckAfter time.Duration
	// CriticalGrace is how far past the estimated duration a job may run
	// before the alert level becomes critical.
	CriticalGrace time.Duration
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		Tick:                time.Minute,
		EmergencyCheckAfter: 4 * time.Hour,
		CriticalGrace:       2 * time.Hour,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Tick <= 0 {
		c.Tick = def.Tick
	}
	if c.EmergencyCheckAfter <= 0 {
		c.EmergencyCheckAfter = def.EmergencyCheckAfter
	}
	if c.CriticalGrace <= 0 {
		c.CriticalGrace = def.CriticalGrace
	}
	return c
}
