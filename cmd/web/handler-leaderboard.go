package main

import (
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/repositories"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type leaderboardData struct {
	Date    string                          `json:"date"`
	Entries []repositories.LeaderboardEntry `json:"entries"`
}

// leaderboard serves the solved games of one day ranked by score. Defaults to today.
func (app *application) leaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = game.DateKey(time.Now())
	} else if _, err := time.Parse(time.DateOnly, date); err != nil {
		app.writeError(w, r, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	limit := defaultLeaderboardLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			app.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxLeaderboardLimit)
	}

	entries, err := app.store.Leaderboard(r.Context(), date, limit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, leaderboardData{
		Date:    date,
		Entries: entries,
	})
}
