package main

import (
	"net/http"
)

type accuseRequest struct {
	SessionID   string `json:"session_id"`
	SuspectName string `json:"suspect_name"`
}

func (app *application) accuseSuspect(w http.ResponseWriter, r *http.Request) {
	var req accuseRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SuspectName == "" {
		app.writeError(w, r, http.StatusBadRequest, "suspect_name is required")
		return
	}

	sessionID := app.resolveSessionID(r, req.SessionID)
	result, err := app.manager.Accuse(r.Context(), sessionID, req.SuspectName)
	if err != nil {
		app.gameError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, result)
}
