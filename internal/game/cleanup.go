package game

import (
	"context"
	"github.com/myrjola/whodunit/internal/errors"
	"log/slog"
	"time"
)

// RunCleanup sweeps on the configured period until the context is cancelled. Run it as a
// background goroutine alongside the request handlers.
func (m *Manager) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one retention pass: it evicts finished sessions past the in-memory
// retention window and deletes aged persisted rows on their own, longer horizons.
func (m *Manager) Sweep(ctx context.Context) {
	evicted := m.evictFinishedSessions(ctx)
	if evicted > 0 {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "evicted finished sessions", slog.Int("count", evicted))
	}

	if deleted, err := m.store.DeleteSessionsOlderThan(ctx, m.cfg.PersistedSessionAge); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "delete aged session rows", errors.SlogError(err))
	} else if deleted > 0 {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "deleted aged session rows", slog.Int64("count", deleted))
	}

	if deleted, err := m.store.DeleteScenariosOlderThan(ctx, m.cfg.PersistedScenarioAge); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "delete aged scenario rows", errors.SlogError(err))
	} else if deleted > 0 {
		m.logger.LogAttrs(ctx, slog.LevelInfo, "deleted aged scenario rows", slog.Int64("count", deleted))
	}
}

// evictFinishedSessions removes finished sessions whose end time is beyond the retention
// window. It snapshots candidates under the read lock first and re-checks under the
// write lock so an in-flight action on the same session cannot race the eviction.
func (m *Manager) evictFinishedSessions(ctx context.Context) int {
	cutoff := m.now().Add(-m.cfg.SessionRetention)

	m.mu.RLock()
	candidates := make([]*Session, 0)
	for _, session := range m.sessions {
		if m.evictable(ctx, session, cutoff) {
			candidates = append(candidates, session)
		}
	}
	m.mu.RUnlock()

	if len(candidates) == 0 {
		return 0
	}

	evicted := 0
	m.mu.Lock()
	for _, session := range candidates {
		if m.evictable(ctx, session, cutoff) {
			delete(m.sessions, session.id)
			evicted++
		}
	}
	m.mu.Unlock()
	return evicted
}

func (m *Manager) evictable(ctx context.Context, session *Session, cutoff time.Time) bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	if !session.finished {
		return false
	}
	if session.endTime.IsZero() {
		// A finished session without an end time points at timestamp corruption.
		// Conservatively keep it instead of losing data.
		m.logger.LogAttrs(ctx, slog.LevelWarn, "finished session has no end time, keeping",
			slog.String("session_id", session.id))
		return false
	}
	return session.endTime.Before(cutoff)
}
