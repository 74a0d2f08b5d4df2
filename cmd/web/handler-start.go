package main

import (
	"net/http"
)

// startGame creates a session against today's scenario and remembers it in the cookie
// session so subsequent requests can omit the session ID.
func (app *application) startGame(w http.ResponseWriter, r *http.Request) {
	state, err := app.manager.Start(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), currentSessionKey, state.SessionID)

	app.writeData(w, r, http.StatusOK, state)
}
