package server

import (
	"bufio"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestEventStreamDeliversBroadcasts(t *testing.T) {
	ts := newTestServer(t)

	_, ada := registerUser(t, ts, "ada@example.com", "ada")
	_, bob := registerUser(t, ts, "bob@example.com", "bob")
	gameID := createGame(t, ts, ada)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/games/"+gameID+"/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.AddCookie(ada)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected event stream content type, got %q", ct)
	}

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	joinGame(t, ts, gameID, bob)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed before the event arrived")
			}
			if strings.Contains(line, "UserJoinedLobby") {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the join event")
		}
	}
}

func TestEventStreamRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	_, ada := registerUser(t, ts, "ada@example.com", "ada")
	gameID := createGame(t, ts, ada)

	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/events", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestEventStreamUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	_, ada := registerUser(t, ts, "ada@example.com", "ada")
	resp := doRequest(t, ts, http.MethodGet, "/api/games/no-such-game/events", nil, ada)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
