package main

import (
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	session := alice.New(app.sessionManager.LoadAndSave)

	mux.Handle("POST /api/start", session.ThenFunc(app.startGame))
	mux.Handle("POST /api/ask", session.ThenFunc(app.askQuestion))
	mux.Handle("POST /api/hint", session.ThenFunc(app.requestHint))
	mux.Handle("POST /api/accuse", session.ThenFunc(app.accuseSuspect))
	mux.Handle("GET /api/game/{sessionID}", session.ThenFunc(app.gameState))

	mux.HandleFunc("GET /api/leaderboard", app.leaderboard)
	mux.HandleFunc("GET /api/stats/today", app.statsToday)
	mux.HandleFunc("GET /api/stats", app.statsTotal)
	mux.HandleFunc("GET /api/healthy", app.healthy)

	return app.recoverPanic(app.logRequest(commonHeaders(mux)))
}
