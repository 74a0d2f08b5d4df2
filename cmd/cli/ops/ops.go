// Package ops holds CLI commands that modify the persisted game data.
package ops

import (
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/repositories"
	"github.com/myrjola/whodunit/internal/sqlite"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
)

var Group = &cobra.Group{
	ID:    "ops",
	Title: "Operations",
}

func init() {
	// Defaults match the retention horizons of the server's own periodic sweep.
	cfg := game.DefaultConfig()
	Cleanup.Flags().Duration("session-age", cfg.PersistedSessionAge, "delete finished sessions older than this")
	Cleanup.Flags().Duration("scenario-age", cfg.PersistedScenarioAge, "delete scenarios older than this")
}

// Cleanup deletes aged rows on demand. The server runs the same retention sweep
// periodically; this command exists for pruning a database while the server is down.
var Cleanup = &cobra.Command{
	Use:     "cleanup",
	GroupID: "ops",
	Short:   "Delete aged sessions and scenarios",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		url, ok := os.LookupEnv("WHODUNIT_SQLITE_URL")
		if !ok {
			url = "./whodunit.sqlite"
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		db, err := sqlite.NewDatabase(ctx, url, logger)
		if err != nil {
			return errors.Wrap(err, "open database", slog.String("url", url))
		}
		defer func() {
			_ = db.Close()
		}()
		store := repositories.NewGameStore(db, logger)

		sessionAge, err := cmd.Flags().GetDuration("session-age")
		if err != nil {
			return errors.Wrap(err, "get session-age flag")
		}
		scenarioAge, err := cmd.Flags().GetDuration("scenario-age")
		if err != nil {
			return errors.Wrap(err, "get scenario-age flag")
		}

		deletedSessions, err := store.DeleteSessionsOlderThan(ctx, sessionAge)
		if err != nil {
			return errors.Wrap(err, "delete sessions")
		}
		deletedScenarios, err := store.DeleteScenariosOlderThan(ctx, scenarioAge)
		if err != nil {
			return errors.Wrap(err, "delete scenarios")
		}

		cmd.Printf("Deleted %d sessions and %d scenarios\n", deletedSessions, deletedScenarios)
		return nil
	},
}
