package main

import (
	"fmt"
	"github.com/myrjola/whodunit/internal/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"os"
	"testing"
)

func TestAPI_PlayThrough(t *testing.T) {
	srv := startTestServer(t, os.Stderr, newScriptedModel(t))
	scenario := prompts.DefaultScenario()

	status, body := srv.PostJSON(t, "/api/start", map[string]any{})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	started := dataOf(t, body)
	sessionID, ok := started["session_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, sessionID)

	t.Run("the scenario view never leaks the solution", func(t *testing.T) {
		scenarioView, ok := started["scenario"].(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, scenarioView, "culprit")
		npcs, ok := scenarioView["npcs"].([]any)
		require.True(t, ok)
		require.Len(t, npcs, 3)
		for _, rawNPC := range npcs {
			npc, ok := rawNPC.(map[string]any)
			require.True(t, ok)
			assert.NotContains(t, npc, "secret")
			assert.NotContains(t, npc, "alibi")
		}
	})

	t.Run("asking a question", func(t *testing.T) {
		// The session ID is omitted so the cookie session has to supply it.
		status, body := srv.PostJSON(t, "/api/ask", map[string]any{
			"npc_name": scenario.NPCs[0].Name,
			"question": "Where were you at 11 PM?",
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["success"])
		data := dataOf(t, body)
		assert.Equal(t, "I was in the study all evening.", data["answer"])
		assert.InDelta(t, 80, data["quality_score"], 0.001)
		assert.InDelta(t, 1, data["total_questions"], 0.001)
	})

	t.Run("asking an unknown character is not found", func(t *testing.T) {
		status, body := srv.PostJSON(t, "/api/ask", map[string]any{
			"npc_name": "Professor Moriarty",
			"question": "Did you do it?",
		})
		require.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "unknown character", body["error"])
	})

	t.Run("a wrong accusation keeps the game going", func(t *testing.T) {
		status, body := srv.PostJSON(t, "/api/accuse", map[string]any{
			"suspect_name": scenario.NPCs[1].Name,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["success"])
		data := dataOf(t, body)
		assert.Equal(t, false, data["is_correct"])
		assert.NotContains(t, data, "culprit")
	})

	t.Run("a correct accusation finishes and scores the game", func(t *testing.T) {
		status, body := srv.PostJSON(t, "/api/accuse", map[string]any{
			"suspect_name": scenario.Culprit,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["success"])
		data := dataOf(t, body)
		assert.Equal(t, true, data["is_correct"])
		assert.Equal(t, scenario.Culprit, data["culprit"])

		score, ok := data["score"].(map[string]any)
		require.True(t, ok)
		// One question scored 80: quality 40 of 50, count 50 of 50.
		assert.InDelta(t, 90.0, score["total_score"], 0.001)
		assert.Equal(t, "S", score["grade"])
	})

	t.Run("a finished game rejects further questions", func(t *testing.T) {
		status, body := srv.PostJSON(t, "/api/ask", map[string]any{
			"npc_name": scenario.NPCs[0].Name,
			"question": "One more thing...",
		})
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("game state by explicit ID", func(t *testing.T) {
		status, body := srv.GetJSON(t, "/api/game/"+sessionID)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["success"])
		data := dataOf(t, body)
		assert.Equal(t, true, data["is_finished"])
		questions, ok := data["questions"].([]any)
		require.True(t, ok)
		assert.Len(t, questions, 1)
	})

	t.Run("game state via the cookie session", func(t *testing.T) {
		status, body := srv.GetJSON(t, "/api/game/current")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, sessionID, dataOf(t, body)["session_id"])
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		status, body := srv.GetJSON(t, "/api/game/no-such-session")
		require.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("the solved game appears on the leaderboard", func(t *testing.T) {
		status, body := srv.GetJSON(t, "/api/leaderboard")
		require.Equal(t, http.StatusOK, status)
		data := dataOf(t, body)
		entries, ok := data["entries"].([]any)
		require.True(t, ok)
		require.NotEmpty(t, entries)
		top, ok := entries[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, sessionID, top["session_id"])
		assert.InDelta(t, 90.0, top["final_score"], 0.001)
	})

	t.Run("daily and global stats count the game", func(t *testing.T) {
		status, body := srv.GetJSON(t, "/api/stats/today")
		require.Equal(t, http.StatusOK, status)
		assert.InDelta(t, 1, dataOf(t, body)["solved_games"], 0.001)

		status, body = srv.GetJSON(t, "/api/stats")
		require.Equal(t, http.StatusOK, status)
		assert.InDelta(t, 1, dataOf(t, body)["total_days"], 0.001)
	})

	t.Run("malformed leaderboard parameters are rejected", func(t *testing.T) {
		status, _ := srv.GetJSON(t, "/api/leaderboard?date=yesterday")
		assert.Equal(t, http.StatusBadRequest, status)
		status, _ = srv.GetJSON(t, "/api/leaderboard?limit=-1")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAPI_Hints(t *testing.T) {
	srv := startTestServer(t, os.Stderr, newScriptedModel(t))

	status, body := srv.PostJSON(t, "/api/start", map[string]any{})
	require.Equal(t, http.StatusOK, status)
	sessionID, ok := dataOf(t, body)["session_id"].(string)
	require.True(t, ok)

	for i := 1; i <= 3; i++ {
		status, body = srv.PostJSON(t, "/api/hint", map[string]any{"session_id": sessionID})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["success"])
		data := dataOf(t, body)
		assert.Equal(t, "Follow the money.", data["hint"])
		assert.InDelta(t, i, data["hints_used"], 0.001)
	}

	status, body = srv.PostJSON(t, "/api/hint", map[string]any{"session_id": sessionID})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "hint limit reached", body["error"])
}

func TestAPI_MalformedBody(t *testing.T) {
	srv := startTestServer(t, os.Stderr, newScriptedModel(t))

	for _, urlPath := range []string{"/api/ask", "/api/hint", "/api/accuse"} {
		t.Run(urlPath, func(t *testing.T) {
			resp, err := srv.client.Post(srv.url+urlPath, "application/json", nil)
			require.NoError(t, err)
			body := decodeBody(t, resp)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, fmt.Sprintf("POST %s", urlPath))
			assert.Equal(t, false, body["success"])
		})
	}
}
