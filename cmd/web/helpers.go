package main

import (
	"encoding/json"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/game"
	"log/slog"
	"net/http"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response",
			slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	}
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

// writeData wraps the payload in the success envelope every endpoint shares.
func (app *application) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	app.writeJSON(w, r, status, successResponse{Success: true, Data: data})
}

func (app *application) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, errorResponse{Success: false, Error: message})
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	app.writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// gameError maps the game package sentinels onto client-facing statuses. Anything
// unrecognized is treated as a server fault.
func (app *application) gameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		app.writeError(w, r, http.StatusNotFound, "session not found")
	case errors.Is(err, game.ErrUnknownNPC):
		app.writeError(w, r, http.StatusNotFound, "unknown character")
	case errors.Is(err, game.ErrSessionFinished):
		app.writeError(w, r, http.StatusBadRequest, "the game is already finished")
	case errors.Is(err, game.ErrQuestionLimit):
		app.writeError(w, r, http.StatusBadRequest, "question limit reached")
	case errors.Is(err, game.ErrHintLimit):
		app.writeError(w, r, http.StatusBadRequest, "hint limit reached")
	case errors.Is(err, game.ErrNoQuestions):
		app.writeError(w, r, http.StatusBadRequest, "ask at least one question before accusing")
	default:
		app.serverError(w, r, err)
	}
}

// currentSessionKey is the scs session key holding the player's latest game session ID.
const currentSessionKey = "currentGameSessionID"

// resolveSessionID prefers the explicit ID from the request body and falls back to the
// game remembered in the cookie session.
func (app *application) resolveSessionID(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return app.sessionManager.GetString(r.Context(), currentSessionKey)
}
