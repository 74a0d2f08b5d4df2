package main

import (
	"github.com/myrjola/whodunit/internal/game"
	"github.com/myrjola/whodunit/internal/repositories"
	"net/http"
	"time"
)

type dailyStatsData struct {
	Date string `json:"date"`
	repositories.DailyStats
}

func (app *application) statsToday(w http.ResponseWriter, r *http.Request) {
	date := game.DateKey(time.Now())
	stats, err := app.store.StatsForDate(r.Context(), date)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, dailyStatsData{
		Date:       date,
		DailyStats: stats,
	})
}

func (app *application) statsTotal(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.TotalStats(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeData(w, r, http.StatusOK, stats)
}
