package game

import (
	"context"
	"encoding/json"
	"github.com/myrjola/whodunit/internal/ai"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/prompts"
	"log/slog"
)

// scenarioAttempts bounds the independent generation attempts before falling back to the
// hardcoded scenario.
const scenarioAttempts = 3

// generateScenario asks the collaborator for a fresh mystery. It never fails: after
// exhausting all attempts it returns the hardcoded fallback scenario, so game start
// always succeeds even under total collaborator failure.
func (m *Manager) generateScenario(ctx context.Context) *models.Scenario {
	for attempt := 1; attempt <= scenarioAttempts; attempt++ {
		text, err := m.completer.Complete(ctx, prompts.ScenarioGeneration)
		if err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "scenario generation attempt failed",
				slog.Int("attempt", attempt), errors.SlogError(err))
			continue
		}

		var scenario models.Scenario
		if err = json.Unmarshal([]byte(ai.ExtractPayload(text)), &scenario); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "scenario generation returned invalid JSON",
				slog.Int("attempt", attempt), errors.SlogError(err))
			continue
		}
		if len(scenario.NPCs) == 0 {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "scenario generation returned no NPCs",
				slog.Int("attempt", attempt))
			continue
		}

		// Repair, not rejection: a culprit outside the roster is silently reassigned to
		// the first NPC. Leaderboard fairness depends on keeping this policy stable.
		if scenario.FindNPC(scenario.Culprit) == nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "culprit not in NPC roster, repairing",
				slog.String("culprit", scenario.Culprit),
				slog.String("repaired", scenario.NPCs[0].Name))
			scenario.Culprit = scenario.NPCs[0].Name
		}

		return &scenario
	}

	m.logger.LogAttrs(ctx, slog.LevelError, "scenario generation exhausted all attempts, using fallback")
	fallback := prompts.DefaultScenario()
	return &fallback
}
