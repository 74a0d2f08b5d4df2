package game

import (
	"context"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/prompts"
	"log/slog"
	"strings"
)

// npcApology is the fixed in-character fallback when response generation fails.
const npcApology = "I'm sorry, I find it hard to answer right now."

// npcResponse generates the interrogated NPC's role-played answer. The no-leak-of-secret
// policy is enforced purely through the prompt; the game does not inspect the answer for
// leaks. Any failure degrades into a fixed apology, never an error.
func (m *Manager) npcResponse(
	ctx context.Context,
	question string,
	npc models.NPC,
	scenario *models.Scenario,
	history string,
) string {
	text, err := m.completer.Complete(ctx, prompts.NPCResponse(question, npc, scenario, history))
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "NPC response generation failed",
			slog.String("npc_name", npc.Name), errors.SlogError(err))
		return npcApology
	}
	return strings.TrimSpace(text)
}

// generateHint asks the collaborator for an indirect hint. Unlike evaluation and NPC
// responses, a failed hint surfaces as an error and leaves the session unchanged.
func (m *Manager) generateHint(ctx context.Context, narrative, culprit string) (string, error) {
	text, err := m.completer.Complete(ctx, prompts.HintGeneration(narrative, culprit))
	if err != nil {
		return "", errors.Wrap(err, "complete hint prompt")
	}
	return strings.TrimSpace(text), nil
}
