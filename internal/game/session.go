package game

import (
	"github.com/myrjola/whodunit/internal/models"
	"sync"
	"time"
)

// Session is one player's playthrough against the day's scenario. All mutation happens
// through the Manager while holding mu, so concurrent actions on the same session are
// serialized and the question log order is exactly the order of accepted actions.
type Session struct {
	mu sync.Mutex

	id           string
	scenarioDate string
	// scenario is shared with every other session started the same day and must never
	// be mutated.
	scenario *models.Scenario
	// culprit is copied from the scenario so accusation checks need not dereference the
	// shared scenario.
	culprit    string
	questions  []models.QuestionRecord
	hintsUsed  int
	finished   bool
	startTime  time.Time
	endTime    time.Time
	finalScore *models.ScoreInfo
}

// askedQuestions counts the real interrogation questions, excluding hint records.
func (s *Session) askedQuestions() int {
	n := 0
	for _, q := range s.questions {
		if !q.IsHint() {
			n++
		}
	}
	return n
}

// averageQuality averages the quality scores over all records including hints, whose
// fixed zero score is the intended hint penalty. Returns 0 for an empty log.
func (s *Session) averageQuality() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	sum := 0
	for _, q := range s.questions {
		sum += q.QualityScore
	}
	return float64(sum) / float64(len(s.questions))
}

// State is the public read surface of a session. It never contains the culprit or NPC
// secrets; the culprit is revealed separately on a correct accusation.
type State struct {
	SessionID      string                `json:"session_id"`
	Scenario       models.PublicScenario `json:"scenario"`
	TotalQuestions int                   `json:"total_questions"`
	HintsUsed      int                   `json:"hints_used"`
	IsFinished     bool                  `json:"is_finished"`
	FinalScore     *models.ScoreInfo     `json:"final_score,omitempty"`
}

// state snapshots the public view. Callers must hold s.mu.
func (s *Session) state() State {
	return State{
		SessionID:      s.id,
		Scenario:       s.scenario.Public(),
		TotalQuestions: len(s.questions),
		HintsUsed:      s.hintsUsed,
		IsFinished:     s.finished,
		FinalScore:     s.finalScore,
	}
}
