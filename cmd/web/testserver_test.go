package main

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/myrjola/whodunit/internal/ai"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/myrjola/whodunit/internal/logging"
	"github.com/myrjola/whodunit/internal/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "WHODUNIT_ADDR":
		return "localhost:0", true
	case "WHODUNIT_PPROF_PORT":
		return ":0", true
	case "WHODUNIT_SQLITE_URL":
		return ":memory:", true
	default:
		return "", false
	}
}

// scriptedModel recognizes which collaborator prompt is being sent and answers with
// deterministic text, so the full server runs without network access.
type scriptedModel struct {
	scenarioJSON string
}

func newScriptedModel(t *testing.T) *scriptedModel {
	t.Helper()
	scenario := prompts.DefaultScenario()
	scenarioJSON, err := json.Marshal(scenario)
	require.NoError(t, err)
	return &scriptedModel{scenarioJSON: string(scenarioJSON)}
}

func (s *scriptedModel) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "scenario writer"):
		return s.scenarioJSON, nil
	case strings.Contains(prompt, "question quality judge"):
		return `{"score": 80, "reasoning": "targets the alibi"}`, nil
	case strings.Contains(prompt, "Write a hint"):
		return "Follow the money.", nil
	default:
		return "I was in the study all evening.", nil
	}
}

type testServer struct {
	url    string
	client http.Client
}

// startTestServer starts the test server, waits for it to be ready, and returns the
// server URL for testing.
func startTestServer(t *testing.T, w io.Writer, completer ai.Completer) testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "Addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, testLookupEnv, completer); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return testServer{} //nolint:exhaustruct // This is unreachable.
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		if err := waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)); err != nil {
			require.NoError(t, err)
		}
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		return testServer{
			url:    serverURL,
			client: http.Client{Jar: jar},
		}
	}
}

// PostJSON sends a JSON body and decodes the JSON response into a generic map.
func (s *testServer) PostJSON(t *testing.T, urlPath string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := s.client.Post(s.url+urlPath, "application/json", strings.NewReader(string(payload)))
	require.NoError(t, err)
	return resp.StatusCode, decodeBody(t, resp)
}

// GetJSON fetches a URL and decodes the JSON response into a generic map.
func (s *testServer) GetJSON(t *testing.T, urlPath string) (int, map[string]any) {
	t.Helper()
	resp, err := s.client.Get(s.url + urlPath)
	require.NoError(t, err)
	return resp.StatusCode, decodeBody(t, resp)
}

// dataOf unwraps the success envelope.
func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data envelope in %v", body)
	return data
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() {
		err := resp.Body.Close()
		assert.NoError(t, err)
	}()
	var decoded map[string]any
	err := json.NewDecoder(resp.Body).Decode(&decoded)
	require.NoError(t, err)
	return decoded
}
