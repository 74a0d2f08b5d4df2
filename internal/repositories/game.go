// Package repositories implements the persistence collaborator on SQLite. All writes go
// through the single-connection read-write pool; reads use the read-only pool.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"github.com/jmoiron/sqlx"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/sqlite"
	"log/slog"
	"time"
)

type GameStore struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewGameStore(db *sqlite.Database, logger *slog.Logger) *GameStore {
	return &GameStore{
		readWrite: sqlx.NewDb(db.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(db.ReadOnly, "sqlite3"),
		logger:    logger.With("source", "GameStore"),
	}
}

// GetScenario returns the scenario stored for the date key, or (nil, nil) when the day
// has no scenario yet.
func (s *GameStore) GetScenario(ctx context.Context, date string) (*models.Scenario, error) {
	var scenarioJSON string
	err := s.readOnly.GetContext(ctx, &scenarioJSON,
		`SELECT scenario_json FROM daily_scenarios WHERE date = ?`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read daily scenario", slog.String("date", date))
	}

	var scenario models.Scenario
	if err = json.Unmarshal([]byte(scenarioJSON), &scenario); err != nil {
		return nil, errors.Wrap(err, "unmarshal daily scenario", slog.String("date", date))
	}
	return &scenario, nil
}

// PutScenario stores the scenario for the date key. Concurrent first-writes of the day
// resolve as last write wins.
func (s *GameStore) PutScenario(ctx context.Context, date string, scenario *models.Scenario) error {
	scenarioJSON, err := json.Marshal(scenario)
	if err != nil {
		return errors.Wrap(err, "marshal daily scenario", slog.String("date", date))
	}
	if _, err = s.readWrite.ExecContext(ctx,
		`INSERT OR REPLACE INTO daily_scenarios (date, scenario_json, created_at) VALUES (?, ?, ?)`,
		date, string(scenarioJSON), time.Now().UTC()); err != nil {
		return errors.Wrap(err, "insert daily scenario", slog.String("date", date))
	}
	return nil
}

func (s *GameStore) CreateSession(
	ctx context.Context, id string, date string, culprit string, startTime time.Time,
) error {
	if _, err := s.readWrite.ExecContext(ctx,
		`INSERT INTO game_sessions (session_id, scenario_date, start_time, culprit) VALUES (?, ?, ?, ?)`,
		id, date, startTime.UTC(), culprit); err != nil {
		return errors.Wrap(err, "insert game session", slog.String("session_id", id))
	}
	return nil
}

func (s *GameStore) AppendQuestion(ctx context.Context, sessionID string, record models.QuestionRecord) error {
	if _, err := s.readWrite.ExecContext(ctx,
		`INSERT INTO questions (session_id, npc_name, question, answer, quality_score, reasoning, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, record.NPCName, record.Question, record.Answer,
		record.QualityScore, record.Reasoning, record.Timestamp.UTC()); err != nil {
		return errors.Wrap(err, "insert question", slog.String("session_id", sessionID))
	}
	return nil
}

// FinishSession records the terminal result of a session. The score columns stay NULL
// when the session ended without a score.
func (s *GameStore) FinishSession(
	ctx context.Context,
	id string,
	solved bool,
	accusedNPC string,
	questionCount int,
	hintsUsed int,
	score *models.ScoreInfo,
) error {
	endTime := time.Now().UTC()
	var err error
	if score != nil {
		_, err = s.readWrite.ExecContext(ctx,
			`UPDATE game_sessions
			 SET end_time = ?, is_finished = 1, solved = ?, accused_npc = ?,
			     questions_count = ?, hints_used = ?,
			     final_score = ?, quality_score = ?, count_score = ?, grade = ?, avg_quality = ?
			 WHERE session_id = ?`,
			endTime, solved, accusedNPC, questionCount, hintsUsed,
			score.TotalScore, score.QualityScore, score.CountScore, score.Grade, score.AvgQuality, id)
	} else {
		_, err = s.readWrite.ExecContext(ctx,
			`UPDATE game_sessions
			 SET end_time = ?, is_finished = 1, solved = ?, accused_npc = ?,
			     questions_count = ?, hints_used = ?
			 WHERE session_id = ?`,
			endTime, solved, accusedNPC, questionCount, hintsUsed, id)
	}
	if err != nil {
		return errors.Wrap(err, "finish game session", slog.String("session_id", id))
	}
	return nil
}

// SessionRow mirrors one game_sessions row.
type SessionRow struct {
	SessionID      string     `db:"session_id" json:"session_id"`
	ScenarioDate   string     `db:"scenario_date" json:"scenario_date"`
	StartTime      time.Time  `db:"start_time" json:"start_time"`
	EndTime        *time.Time `db:"end_time" json:"end_time,omitempty"`
	IsFinished     bool       `db:"is_finished" json:"is_finished"`
	Solved         bool       `db:"solved" json:"solved"`
	AccusedNPC     *string    `db:"accused_npc" json:"accused_npc,omitempty"`
	Culprit        string     `db:"culprit" json:"-"`
	QuestionsCount int        `db:"questions_count" json:"questions_count"`
	HintsUsed      int        `db:"hints_used" json:"hints_used"`
	FinalScore     *float64   `db:"final_score" json:"final_score,omitempty"`
	QualityScore   *float64   `db:"quality_score" json:"quality_score,omitempty"`
	CountScore     *float64   `db:"count_score" json:"count_score,omitempty"`
	Grade          *string    `db:"grade" json:"grade,omitempty"`
	AvgQuality     *float64   `db:"avg_quality" json:"avg_quality,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"-"`
}

func (s *GameStore) GetSession(ctx context.Context, id string) (*SessionRow, error) {
	var row SessionRow
	err := s.readOnly.GetContext(ctx, &row,
		`SELECT * FROM game_sessions WHERE session_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read game session", slog.String("session_id", id))
	}
	return &row, nil
}

// SessionQuestions returns the question log of a session in ask order.
func (s *GameStore) SessionQuestions(ctx context.Context, sessionID string) ([]models.QuestionRecord, error) {
	type questionRow struct {
		ID           int64     `db:"id"`
		SessionID    string    `db:"session_id"`
		NPCName      string    `db:"npc_name"`
		Question     string    `db:"question"`
		Answer       string    `db:"answer"`
		QualityScore int       `db:"quality_score"`
		Reasoning    *string   `db:"reasoning"`
		Timestamp    time.Time `db:"timestamp"`
	}
	var rows []questionRow
	if err := s.readOnly.SelectContext(ctx, &rows,
		`SELECT * FROM questions WHERE session_id = ? ORDER BY timestamp ASC, id ASC`,
		sessionID); err != nil {
		return nil, errors.Wrap(err, "read session questions", slog.String("session_id", sessionID))
	}
	records := make([]models.QuestionRecord, len(rows))
	for i, row := range rows {
		reasoning := ""
		if row.Reasoning != nil {
			reasoning = *row.Reasoning
		}
		records[i] = models.QuestionRecord{
			NPCName:      row.NPCName,
			Question:     row.Question,
			Answer:       row.Answer,
			QualityScore: row.QualityScore,
			Reasoning:    reasoning,
			Timestamp:    row.Timestamp,
		}
	}
	return records, nil
}

func (s *GameStore) DeleteSessionsOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	result, err := s.readWrite.ExecContext(ctx,
		`DELETE FROM game_sessions WHERE is_finished = 1 AND end_time < ?`,
		time.Now().UTC().Add(-age))
	if err != nil {
		return 0, errors.Wrap(err, "delete aged sessions")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "count deleted sessions")
	}
	return deleted, nil
}

func (s *GameStore) DeleteScenariosOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	result, err := s.readWrite.ExecContext(ctx,
		`DELETE FROM daily_scenarios WHERE created_at < ?`,
		time.Now().UTC().Add(-age))
	if err != nil {
		return 0, errors.Wrap(err, "delete aged scenarios")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "count deleted scenarios")
	}
	return deleted, nil
}

// LeaderboardEntry is one solved game on the daily leaderboard.
type LeaderboardEntry struct {
	SessionID      string    `db:"session_id" json:"session_id"`
	FinalScore     float64   `db:"final_score" json:"final_score"`
	Grade          string    `db:"grade" json:"grade"`
	QuestionsCount int       `db:"questions_count" json:"questions_count"`
	HintsUsed      int       `db:"hints_used" json:"hints_used"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
}

// Leaderboard lists the solved games of a day, best score first, ties broken by fewer
// questions.
func (s *GameStore) Leaderboard(ctx context.Context, date string, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := s.readOnly.SelectContext(ctx, &entries,
		`SELECT session_id, final_score, grade, questions_count, hints_used, end_time
		 FROM game_sessions
		 WHERE scenario_date = ? AND is_finished = 1 AND solved = 1
		 ORDER BY final_score DESC, questions_count ASC
		 LIMIT ?`, date, limit); err != nil {
		return nil, errors.Wrap(err, "read leaderboard", slog.String("date", date))
	}
	return entries, nil
}

// DailyStats aggregates the games played against one day's scenario. Averages are nil
// when no game contributes to them.
type DailyStats struct {
	TotalGames     int      `db:"total_games" json:"total_games"`
	CompletedGames int      `db:"completed_games" json:"completed_games"`
	SolvedGames    int      `db:"solved_games" json:"solved_games"`
	AvgScore       *float64 `db:"avg_score" json:"avg_score"`
	AvgQuestions   *float64 `db:"avg_questions" json:"avg_questions"`
	AvgHints       *float64 `db:"avg_hints" json:"avg_hints"`
}

func (s *GameStore) StatsForDate(ctx context.Context, date string) (DailyStats, error) {
	var stats DailyStats
	if err := s.readOnly.GetContext(ctx, &stats,
		`SELECT COUNT(*)                                                          AS total_games,
		        COALESCE(SUM(CASE WHEN is_finished = 1 THEN 1 ELSE 0 END), 0)     AS completed_games,
		        COALESCE(SUM(CASE WHEN solved = 1 THEN 1 ELSE 0 END), 0)          AS solved_games,
		        AVG(CASE WHEN final_score IS NOT NULL THEN final_score END)       AS avg_score,
		        AVG(CASE WHEN questions_count > 0 THEN questions_count END)       AS avg_questions,
		        AVG(CASE WHEN hints_used > 0 THEN hints_used END)                 AS avg_hints
		 FROM game_sessions
		 WHERE scenario_date = ?`, date); err != nil {
		return DailyStats{}, errors.Wrap(err, "read daily stats", slog.String("date", date))
	}
	return stats, nil
}

// GlobalStats aggregates every game ever played.
type GlobalStats struct {
	TotalGames     int      `db:"total_games" json:"total_games"`
	CompletedGames int      `db:"completed_games" json:"completed_games"`
	SolvedGames    int      `db:"solved_games" json:"solved_games"`
	AvgScore       *float64 `db:"avg_score" json:"avg_score"`
	TotalDays      int      `db:"total_days" json:"total_days"`
}

func (s *GameStore) TotalStats(ctx context.Context) (GlobalStats, error) {
	var stats GlobalStats
	if err := s.readOnly.GetContext(ctx, &stats,
		`SELECT COUNT(*)                                                      AS total_games,
		        COALESCE(SUM(CASE WHEN is_finished = 1 THEN 1 ELSE 0 END), 0) AS completed_games,
		        COALESCE(SUM(CASE WHEN solved = 1 THEN 1 ELSE 0 END), 0)      AS solved_games,
		        AVG(CASE WHEN final_score IS NOT NULL THEN final_score END)   AS avg_score,
		        COUNT(DISTINCT scenario_date)                                 AS total_days
		 FROM game_sessions`); err != nil {
		return GlobalStats{}, errors.Wrap(err, "read global stats")
	}
	return stats, nil
}
