package game

import (
	"context"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/models"
	"log/slog"
	"time"
)

// DateKey returns the daily scenario key, YYYY-MM-DD in UTC. Every player in the world
// shares the calendar day, and with it the scenario, on UTC boundaries.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// dailyScenario returns the scenario for the date key, generating and persisting it on
// the first request of the day. All sessions created the same day share the returned
// scenario read-only, which keeps the leaderboard comparison fair.
//
// dailyMu makes this process generate at most once per day. Two processes racing the
// first request may both generate; the INSERT OR REPLACE persistence resolves that as
// last write wins, which is acceptable since only same-day consistency going forward
// matters.
func (m *Manager) dailyScenario(ctx context.Context, date string) *models.Scenario {
	m.dailyMu.Lock()
	defer m.dailyMu.Unlock()

	if m.cachedDate == date && m.cached != nil {
		return m.cached
	}

	scenario, err := m.store.GetScenario(ctx, date)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "load daily scenario",
			slog.String("date", date), errors.SlogError(err))
	}
	if scenario == nil {
		scenario = m.generateScenario(ctx)
		if err = m.store.PutScenario(ctx, date, scenario); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "persist daily scenario",
				slog.String("date", date), errors.SlogError(err))
		}
	}

	m.cachedDate = date
	m.cached = scenario
	return scenario
}
