// Package game implements the session state machine and scoring engine for the daily
// murder-mystery deduction game. The Manager owns the live session registry and
// orchestrates the text-generation and persistence collaborators; it recovers locally
// from every collaborator failure so no player action can crash the process.
package game

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/myrjola/whodunit/internal/ai"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/prompts"
	"log/slog"
	"sync"
	"time"
)

// Manager is the injectable session registry. Construct one at process start and pass it
// to every handler; separate instances are fully isolated, which keeps tests independent.
type Manager struct {
	logger    *slog.Logger
	completer ai.Completer
	store     Store
	cfg       Config
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	// dailyMu guards the memoized scenario of the day so a single process generates at
	// most once per day.
	dailyMu    sync.Mutex
	cachedDate string
	cached     *models.Scenario
}

func NewManager(logger *slog.Logger, completer ai.Completer, store Store, cfg Config) *Manager {
	return &Manager{
		logger:    logger.With("source", "game.Manager"),
		completer: completer,
		store:     store,
		cfg:       cfg,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Start creates a new session bound to today's scenario and returns its public state.
func (m *Manager) Start(ctx context.Context) (State, error) {
	date := DateKey(m.now())
	scenario := m.dailyScenario(ctx, date)

	session := &Session{
		id:           uuid.NewString(),
		scenarioDate: date,
		scenario:     scenario,
		culprit:      scenario.Culprit,
		startTime:    m.now(),
	}

	m.mu.Lock()
	m.sessions[session.id] = session
	m.mu.Unlock()

	if err := m.store.CreateSession(ctx, session.id, date, session.culprit, session.startTime); err != nil {
		// In-memory state is the source of truth for an active game; a lost persistence
		// write only risks a missing leaderboard entry.
		m.logger.LogAttrs(ctx, slog.LevelError, "persist session creation",
			slog.String("session_id", session.id), errors.SlogError(err))
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(), nil
}

// Get returns the public state of a session.
func (m *Manager) Get(sessionID string) (State, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return State{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(), nil
}

// AskResult is the outcome of one accepted interrogation question.
type AskResult struct {
	Answer         string `json:"answer"`
	QualityScore   int    `json:"quality_score"`
	Reasoning      string `json:"reasoning"`
	TotalQuestions int    `json:"total_questions"`
}

// Ask evaluates the question, generates the NPC's answer and appends the record to the
// session log. Valid only on an active session, for a known NPC, while fewer than
// MaxQuestions real questions have been asked.
func (m *Manager) Ask(ctx context.Context, sessionID, npcName, question string) (AskResult, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return AskResult{}, err
	}

	// The session lock is held across the collaborator calls, serializing actions on
	// one session in the order they were accepted.
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished {
		return AskResult{}, ErrSessionFinished
	}
	npc := session.scenario.FindNPC(npcName)
	if npc == nil {
		return AskResult{}, errors.Wrap(ErrUnknownNPC, "find NPC", slog.String("npc_name", npcName))
	}
	if session.askedQuestions() >= m.cfg.MaxQuestions {
		return AskResult{}, ErrQuestionLimit
	}

	scenarioContext := fmt.Sprintf("Title: %s\nSituation: %s",
		session.scenario.Title, session.scenario.Narrative)
	score, reasoning := m.evaluateQuestion(ctx, question, scenarioContext)

	history := prompts.ConversationHistory(session.questions)
	answer := m.npcResponse(ctx, question, *npc, session.scenario, history)

	record := models.QuestionRecord{
		NPCName:      npcName,
		Question:     question,
		Answer:       answer,
		QualityScore: score,
		Reasoning:    reasoning,
		Timestamp:    m.now(),
	}
	session.questions = append(session.questions, record)

	if err = m.store.AppendQuestion(ctx, session.id, record); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "persist question",
			slog.String("session_id", session.id), errors.SlogError(err))
	}

	return AskResult{
		Answer:         answer,
		QualityScore:   score,
		Reasoning:      reasoning,
		TotalQuestions: len(session.questions),
	}, nil
}

// HintResult is the outcome of an accepted hint request.
type HintResult struct {
	Hint      string `json:"hint"`
	HintsUsed int    `json:"hints_used"`
	Penalty   string `json:"penalty"`
}

// Hint generates an indirect hint and logs it as a SYSTEM record with a zero quality
// score, which drags down the quality average. Gated only on the hint budget, not on the
// finished state.
func (m *Manager) Hint(ctx context.Context, sessionID string) (HintResult, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return HintResult{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.hintsUsed >= m.cfg.MaxHints {
		return HintResult{}, ErrHintLimit
	}

	hint, err := m.generateHint(ctx, session.scenario.Narrative, session.culprit)
	if err != nil {
		// Hints have no silent fallback. The request fails and the session is unchanged.
		return HintResult{}, errors.Wrap(err, "generate hint", slog.String("session_id", session.id))
	}

	record := models.QuestionRecord{
		NPCName:      models.SystemNPCName,
		Question:     "[hint requested]",
		Answer:       hint,
		QualityScore: 0,
		Reasoning:    "hint used",
		Timestamp:    m.now(),
	}
	session.questions = append(session.questions, record)
	session.hintsUsed++

	if err = m.store.AppendQuestion(ctx, session.id, record); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "persist hint",
			slog.String("session_id", session.id), errors.SlogError(err))
	}

	return HintResult{
		Hint:      hint,
		HintsUsed: session.hintsUsed,
		Penalty:   "Using a hint lowers your average question quality.",
	}, nil
}

// AccuseResult is the outcome of an accusation. Culprit and Score are only present when
// the accusation was correct.
type AccuseResult struct {
	IsCorrect      bool              `json:"is_correct"`
	Culprit        string            `json:"culprit,omitempty"`
	Score          *models.ScoreInfo `json:"score,omitempty"`
	Message        string            `json:"message"`
	TotalQuestions int               `json:"total_questions"`
}

// Accuse checks the suspect against the culprit. A correct accusation scores the game
// over all records including hints and finishes the session; a wrong accusation changes
// nothing and may be repeated without limit.
func (m *Manager) Accuse(ctx context.Context, sessionID, suspectName string) (AccuseResult, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return AccuseResult{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished {
		return AccuseResult{}, ErrSessionFinished
	}

	if suspectName != session.culprit {
		return AccuseResult{
			IsCorrect:      false,
			Message:        fmt.Sprintf("%s is not the culprit. Keep investigating.", suspectName),
			TotalQuestions: len(session.questions),
		}, nil
	}

	// Hint-only sessions cannot win.
	if session.askedQuestions() == 0 {
		return AccuseResult{}, ErrNoQuestions
	}

	scoreInfo := Score(len(session.questions), session.averageQuality())

	session.finished = true
	session.endTime = m.now()
	session.finalScore = &scoreInfo

	if err = m.store.FinishSession(ctx, session.id, true, suspectName,
		len(session.questions), session.hintsUsed, &scoreInfo); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelError, "persist finished session",
			slog.String("session_id", session.id), errors.SlogError(err))
	}

	return AccuseResult{
		IsCorrect:      true,
		Culprit:        session.culprit,
		Score:          &scoreInfo,
		Message:        fmt.Sprintf("Correct! The culprit is %s.", session.culprit),
		TotalQuestions: len(session.questions),
	}, nil
}

func (m *Manager) lookup(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.Wrap(ErrSessionNotFound, "look up session", slog.String("session_id", sessionID))
	}
	return session, nil
}
