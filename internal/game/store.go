package game

import (
	"context"
	"github.com/myrjola/whodunit/internal/models"
	"time"
)

// Store is the persistence collaborator. It provides best-effort durability for daily
// scenarios, session results and the question log; in-memory session state stays the
// source of truth for an active game, so the Manager logs store failures instead of
// rolling back transitions.
type Store interface {
	// GetScenario returns the stored scenario for the date key, or (nil, nil) when no
	// scenario exists for that day.
	GetScenario(ctx context.Context, date string) (*models.Scenario, error)
	// PutScenario stores the scenario for the date key, replacing any concurrent write
	// for the same day (last write wins).
	PutScenario(ctx context.Context, date string, scenario *models.Scenario) error
	CreateSession(ctx context.Context, id string, date string, culprit string, startTime time.Time) error
	AppendQuestion(ctx context.Context, sessionID string, record models.QuestionRecord) error
	FinishSession(ctx context.Context, id string, solved bool, accusedNPC string,
		questionCount int, hintsUsed int, score *models.ScoreInfo) error
	DeleteSessionsOlderThan(ctx context.Context, age time.Duration) (int64, error)
	DeleteScenariosOlderThan(ctx context.Context, age time.Duration) (int64, error)
}
