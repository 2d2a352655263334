package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"activity-game/internal/chat"
	"activity-game/internal/config"
	"activity-game/internal/events"
	"activity-game/internal/game"
	"activity-game/internal/stats"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := game.NewMemoryProvider()
	seedWords(provider)

	cfg := config.Default()
	games := game.NewService(provider, provider, game.RulesValidator{}, game.Defaults{
		TimerMinutes: cfg.DefaultTimerMinutes,
		MaxScore:     cfg.DefaultMaxScore,
	})
	srv := New(cfg, games, provider, chat.NewService(chat.NewMemoryStore()), stats.NewService(provider, provider), events.NewHub())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func seedWords(provider *game.MemoryProvider) {
	id := uint(0)
	for method := game.MethodDrawing; method < game.MethodCount; method++ {
		for i := 0; i < 12; i++ {
			id++
			provider.SeedWords(game.Word{
				ID:     id,
				Value:  fmt.Sprintf("%s-word-%d", method, i),
				Method: method,
			})
		}
	}
}

// registerUser signs a user up and returns their id plus the session
// cookie the rest of the requests authenticate with.
func registerUser(t *testing.T, ts *httptest.Server, email, username string) (string, *http.Cookie) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"username": username,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie {
			session = cookie
		}
	}
	if session == nil {
		t.Fatalf("expected %s cookie in register response", sessionCookie)
	}

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected user data, got %#v", body["data"])
	}
	return data["id"].(string), session
}

func createGame(t *testing.T, ts *httptest.Server, session *http.Cookie) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games", nil, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	return data["id"].(string)
}

func joinGame(t *testing.T, ts *httptest.Server, gameID string, session *http.Cookie) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", nil, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func fetchGame(t *testing.T, ts *httptest.Server, gameID string, session *http.Cookie) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID, nil, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["data"].(map[string]any)
}

func updateSettings(t *testing.T, ts *httptest.Server, gameID string, session *http.Cookie, timer, maxScore int, methods []string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPut, "/api/games/"+gameID+"/settings", map[string]any{
		"timer_minutes":   timer,
		"max_score":       maxScore,
		"enabled_methods": methods,
	}, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func startGame(t *testing.T, ts *httptest.Server, gameID string, session *http.Cookie) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", nil, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["data"].(map[string]any)
}

func endTurn(t *testing.T, ts *httptest.Server, gameID string, session *http.Cookie, winnerID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/end-turn", map[string]string{
		"winner_user_id": winnerID,
	}, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any, session *http.Cookie) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.AddCookie(session)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
