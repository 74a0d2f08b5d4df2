package prompts

import (
	"fmt"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestConversationHistory(t *testing.T) {
	t.Run("empty history renders nothing", func(t *testing.T) {
		require.Empty(t, ConversationHistory(nil))
	})

	t.Run("includes only the five most recent records", func(t *testing.T) {
		var records []models.QuestionRecord
		for i := range 7 {
			records = append(records, models.QuestionRecord{
				Question: fmt.Sprintf("question %d", i),
				Answer:   fmt.Sprintf("answer %d", i),
			})
		}
		history := ConversationHistory(records)
		require.NotContains(t, history, "question 0")
		require.NotContains(t, history, "question 1")
		require.Contains(t, history, "question 2")
		require.Contains(t, history, "question 6")
		require.Contains(t, history, "answer 6")
		// Numbering restarts at 1 within the window.
		require.Equal(t, 5, strings.Count(history, "Q:"))
	})
}

func TestDefaultScenario(t *testing.T) {
	scenario := DefaultScenario()
	require.Len(t, scenario.NPCs, 3)
	require.NotNil(t, scenario.FindNPC(scenario.Culprit))

	// Mutating a returned copy must not affect later callers.
	scenario.NPCs[0].Name = "tampered"
	require.Equal(t, "Clara Voss", DefaultScenario().NPCs[0].Name)
}

func TestNPCResponseHidesNothingFromModel(t *testing.T) {
	scenario := DefaultScenario()
	npc := scenario.NPCs[0]
	prompt := NPCResponse("Where were you?", npc, &scenario, "")
	// The role-play prompt embeds the private fields so the model can act on them.
	require.Contains(t, prompt, npc.Secret)
	require.Contains(t, prompt, npc.Alibi)
	require.Contains(t, prompt, "Where were you?")
}
