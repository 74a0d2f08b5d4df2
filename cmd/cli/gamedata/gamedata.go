// Package gamedata holds read-only CLI commands for inspecting the persisted game data.
package gamedata

import (
	"context"
	"fmt"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/repositories"
	"github.com/myrjola/whodunit/internal/sqlite"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
	"time"
)

var Group = &cobra.Group{
	ID:    "gamedata",
	Title: "Game data",
}

func init() {
	Leaderboard.Flags().String("date", "", "leaderboard date formatted YYYY-MM-DD, defaults to today")
	Leaderboard.Flags().Int("limit", 10, "maximum number of entries")
	Stats.Flags().Bool("global", false, "aggregate over all days instead of today")
}

// openStore connects to the SQLite database configured in the environment.
func openStore(ctx context.Context) (*repositories.GameStore, func(), error) {
	url, ok := os.LookupEnv("WHODUNIT_SQLITE_URL")
	if !ok {
		url = "./whodunit.sqlite"
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database", slog.String("url", url))
	}
	cleanup := func() {
		_ = db.Close()
	}
	return repositories.NewGameStore(db, logger), cleanup, nil
}

var Leaderboard = &cobra.Command{
	Use:     "leaderboard",
	GroupID: "gamedata",
	Short:   "Print the daily leaderboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		date, err := cmd.Flags().GetString("date")
		if err != nil {
			return errors.Wrap(err, "get date flag")
		}
		if date == "" {
			date = game.DateKey(time.Now())
		} else if _, err = time.Parse(time.DateOnly, date); err != nil {
			return errors.Wrap(err, "parse date flag", slog.String("date", date))
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return errors.Wrap(err, "get limit flag")
		}

		entries, err := store.Leaderboard(ctx, date, limit)
		if err != nil {
			return errors.Wrap(err, "load leaderboard")
		}
		if len(entries) == 0 {
			cmd.Printf("No solved games on %s\n", date)
			return nil
		}
		cmd.Printf("Leaderboard for %s\n", date)
		for i, entry := range entries {
			cmd.Printf("%2d. %6.1f  %s  %2d questions  %d hints  %s\n",
				i+1, entry.FinalScore, entry.Grade, entry.QuestionsCount, entry.HintsUsed, entry.SessionID)
		}
		return nil
	},
}

var Stats = &cobra.Command{
	Use:     "stats",
	GroupID: "gamedata",
	Short:   "Print play statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		global, err := cmd.Flags().GetBool("global")
		if err != nil {
			return errors.Wrap(err, "get global flag")
		}

		if global {
			stats, statsErr := store.TotalStats(ctx)
			if statsErr != nil {
				return errors.Wrap(statsErr, "load global stats")
			}
			cmd.Printf("Games:     %d\n", stats.TotalGames)
			cmd.Printf("Completed: %d\n", stats.CompletedGames)
			cmd.Printf("Solved:    %d\n", stats.SolvedGames)
			cmd.Printf("Avg score: %s\n", formatAvg(stats.AvgScore))
			cmd.Printf("Days:      %d\n", stats.TotalDays)
			return nil
		}

		date := game.DateKey(time.Now())
		stats, err := store.StatsForDate(ctx, date)
		if err != nil {
			return errors.Wrap(err, "load daily stats")
		}
		cmd.Printf("Stats for %s\n", date)
		cmd.Printf("Games:         %d\n", stats.TotalGames)
		cmd.Printf("Completed:     %d\n", stats.CompletedGames)
		cmd.Printf("Solved:        %d\n", stats.SolvedGames)
		cmd.Printf("Avg score:     %s\n", formatAvg(stats.AvgScore))
		cmd.Printf("Avg questions: %s\n", formatAvg(stats.AvgQuestions))
		cmd.Printf("Avg hints:     %s\n", formatAvg(stats.AvgHints))
		return nil
	},
}

var Transcript = &cobra.Command{
	Use:     "transcript [sessionID]",
	GroupID: "gamedata",
	Short:   "Print the interrogation transcript of a session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, cleanup, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		sessionID := args[0]
		session, err := store.GetSession(ctx, sessionID)
		if err != nil {
			return errors.Wrap(err, "load session", slog.String("session_id", sessionID))
		}
		if session == nil {
			return fmt.Errorf("session %s not found", sessionID)
		}

		cmd.Printf("Session %s on %s\n", session.SessionID, session.ScenarioDate)
		if session.IsFinished && session.FinalScore != nil && session.Grade != nil {
			cmd.Printf("Finished with score %.1f (%s)\n", *session.FinalScore, *session.Grade)
		} else {
			cmd.Println("Still in progress")
		}

		questions, err := store.SessionQuestions(ctx, sessionID)
		if err != nil {
			return errors.Wrap(err, "load transcript", slog.String("session_id", sessionID))
		}
		for _, q := range questions {
			if q.NPCName == models.SystemNPCName {
				cmd.Printf("\n[hint] %s\n", q.Answer)
				continue
			}
			cmd.Printf("\nQ (%s, quality %d): %s\nA: %s\n", q.NPCName, q.QualityScore, q.Question, q.Answer)
		}
		return nil
	},
}

func formatAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
