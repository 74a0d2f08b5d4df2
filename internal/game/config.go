package game

import "time"

// Config carries the gameplay bounds and retention policy values.
type Config struct {
	// MaxQuestions bounds the real interrogation questions per session. Hints do not
	// count against it.
	MaxQuestions int
	// MaxHints bounds the hint requests per session.
	MaxHints int
	// SessionRetention is how long a finished session stays in memory before the
	// cleanup worker evicts it.
	SessionRetention time.Duration
	// PersistedSessionAge is how old a finished persisted session row may grow before
	// deletion. Intentionally longer than SessionRetention: eviction protects process
	// memory, row deletion protects storage growth.
	PersistedSessionAge time.Duration
	// PersistedScenarioAge is how old a persisted daily scenario may grow before
	// deletion.
	PersistedScenarioAge time.Duration
	// CleanupPeriod is the interval between cleanup sweeps.
	CleanupPeriod time.Duration
}

// DefaultConfig returns the production policy values.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:         50,
		MaxHints:             3,
		SessionRetention:     time.Hour,
		PersistedSessionAge:  24 * time.Hour,
		PersistedScenarioAge: 30 * 24 * time.Hour,
		CleanupPeriod:        10 * time.Minute,
	}
}
