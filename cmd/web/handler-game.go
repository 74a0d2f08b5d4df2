package main

import (
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/models"
	"github.com/myrjola/whodunit/internal/repositories"
	"log/slog"
	"net/http"
)

type gameStateData struct {
	game.State
	Questions []models.QuestionRecord `json:"questions"`
}

type archivedGameData struct {
	Archived  bool                    `json:"archived"`
	Session   repositories.SessionRow `json:"session"`
	Questions []models.QuestionRecord `json:"questions"`
}

// gameState returns the public state of a session. The literal ID "current" resolves to
// the game remembered in the cookie session. Sessions already evicted from memory are
// served from their persisted rows instead.
func (app *application) gameState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.PathValue("sessionID")
	if sessionID == "current" {
		sessionID = app.sessionManager.GetString(ctx, currentSessionKey)
		if sessionID == "" {
			app.writeError(w, r, http.StatusNotFound, "no active game in this session")
			return
		}
	}

	state, err := app.manager.Get(sessionID)
	if err == nil {
		questions, questionsErr := app.store.SessionQuestions(ctx, sessionID)
		if questionsErr != nil {
			// The in-memory state is still good; serve it without the transcript.
			app.logger.LogAttrs(ctx, slog.LevelError, "load session transcript",
				slog.String("session_id", sessionID), errors.SlogError(questionsErr))
			questions = nil
		}
		app.writeData(w, r, http.StatusOK, gameStateData{State: state, Questions: questions})
		return
	}
	if !errors.Is(err, game.ErrSessionNotFound) {
		app.serverError(w, r, err)
		return
	}

	row, err := app.store.GetSession(ctx, sessionID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load archived session", slog.String("session_id", sessionID)))
		return
	}
	if row == nil {
		app.writeError(w, r, http.StatusNotFound, "session not found")
		return
	}
	questions, err := app.store.SessionQuestions(ctx, sessionID)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load archived transcript", slog.String("session_id", sessionID)))
		return
	}

	app.writeData(w, r, http.StatusOK, archivedGameData{
		Archived:  true,
		Session:   *row,
		Questions: questions,
	})
}
