package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/myrjola/whodunit/internal/ai"
	"github.com/myrjola/whodunit/internal/envstruct"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/logging"
	"github.com/myrjola/whodunit/internal/pprofserver"
	"github.com/myrjola/whodunit/internal/repositories"
	"github.com/myrjola/whodunit/internal/sqlite"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type application struct {
	logger         *slog.Logger
	manager        *game.Manager
	store          *repositories.GameStore
	sessionManager *scs.SessionManager
}

type config struct {
	Addr          string `env:"WHODUNIT_ADDR" envDefault:"localhost:4000"`
	PprofPort     string `env:"WHODUNIT_PPROF_PORT" envDefault:":6060"`
	SQLiteURL     string `env:"WHODUNIT_SQLITE_URL" envDefault:"./whodunit.sqlite"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel   string `env:"WHODUNIT_OPENAI_MODEL" envDefault:""`
	OpenAITimeout string `env:"WHODUNIT_OPENAI_TIMEOUT" envDefault:"60s"`
}

func main() {
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// .env simplifies local development. A missing file is fine in production.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.LookupEnv, nil); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server exited", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled. completer overrides the
// OpenAI-backed client when non-nil, which lets tests exercise the full server without
// network access.
func run(
	ctx context.Context,
	logger *slog.Logger,
	lookupEnv func(string) (string, bool),
	completer ai.Completer,
) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	// pprof listens on localhost so that it's not open to the world.
	pprofserver.Launch(cfg.PprofPort, logger)

	openAITimeout, err := time.ParseDuration(cfg.OpenAITimeout)
	if err != nil {
		return errors.Wrap(err, "parse OpenAI timeout", slog.String("value", cfg.OpenAITimeout))
	}
	if completer == nil {
		completer = ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, openAITimeout)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", cfg.SQLiteURL))

	store := repositories.NewGameStore(db, logger)
	manager := game.NewManager(logger, completer, store, game.DefaultConfig())
	go manager.RunCleanup(ctx)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour)
	sessionManager.Lifetime = 24 * time.Hour

	app := application{
		logger:         logger,
		manager:        manager,
		store:          store,
		sessionManager: sessionManager,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
