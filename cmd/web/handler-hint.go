package main

import (
	"net/http"
)

type hintRequest struct {
	SessionID string `json:"session_id"`
}

func (app *application) requestHint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sessionID := app.resolveSessionID(r, req.SessionID)
	result, err := app.manager.Hint(r.Context(), sessionID)
	if err != nil {
		app.gameError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, result)
}
