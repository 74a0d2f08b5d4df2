package game

import (
	"context"
	"encoding/json"
	"github.com/myrjola/whodunit/internal/ai"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/prompts"
	"log/slog"
)

const (
	// defaultQualityScore is assumed when the judge omits the score.
	defaultQualityScore = 50
	fallbackReasoning   = "evaluation error"
)

// evaluateQuestion rates a player question from 1 to 100 with a short justification.
// One attempt only: any collaborator or parse failure degrades into the fixed fallback
// score so interrogation never stalls on the judge.
func (m *Manager) evaluateQuestion(ctx context.Context, question, scenarioContext string) (int, string) {
	text, err := m.completer.Complete(ctx, prompts.QuestionEvaluation(question, scenarioContext))
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "question evaluation failed", errors.SlogError(err))
		return defaultQualityScore, fallbackReasoning
	}

	var result struct {
		Score     *int   `json:"score"`
		Reasoning string `json:"reasoning"`
	}
	if err = json.Unmarshal([]byte(ai.ExtractPayload(text)), &result); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "question evaluation returned invalid JSON",
			errors.SlogError(err))
		return defaultQualityScore, fallbackReasoning
	}

	score := defaultQualityScore
	if result.Score != nil {
		score = *result.Score
	}
	// Clamp into [1, 100] even when the judge wanders out of range.
	if score < 1 {
		score = 1
	}
	if score > 100 {
		score = 100
	}

	reasoning := result.Reasoning
	if reasoning == "" {
		reasoning = "evaluation complete"
	}

	return score, reasoning
}
