package main

import (
	"net/http"
	"strings"
)

type askRequest struct {
	SessionID string `json:"session_id"`
	NPCName   string `json:"npc_name"`
	Question  string `json:"question"`
}

func (app *application) askQuestion(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.NPCName == "" || strings.TrimSpace(req.Question) == "" {
		app.writeError(w, r, http.StatusBadRequest, "npc_name and question are required")
		return
	}

	sessionID := app.resolveSessionID(r, req.SessionID)
	result, err := app.manager.Ask(r.Context(), sessionID, req.NPCName, req.Question)
	if err != nil {
		app.gameError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, result)
}
