// Package events fans domain events out to the clients subscribed to a
// game. Delivery is push-only and best effort: no acknowledgment, no
// replay, and a slow subscriber is dropped rather than blocking the
// broadcast. Late subscribers recover current state through the game
// details query.
package events

import (
	"log"
	"sync"
)

// Domain events emitted by the game surface.
const (
	UserJoinedLobby     = "UserJoinedLobby"
	GameStarted         = "GameStarted"
	RoundEnded          = "RoundEnded"
	GameEnded           = "GameEnded"
	PlayerLeftLobby     = "PlayerLeftLobby"
	GameSettingsUpdated = "GameSettingsUpdated"
	TimeUp              = "TimeUp"
	ChatMessage         = "ChatMessage"
)

// Envelope is the wire shape of a broadcast event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

const subscriberBuffer = 16

type Hub struct {
	mu    sync.Mutex
	games map[string]map[string]chan Envelope
}

func NewHub() *Hub {
	return &Hub{
		games: make(map[string]map[string]chan Envelope),
	}
}

// Subscribe registers a client on a game channel and returns the stream it
// should drain. An existing subscription under the same client id is
// replaced.
func (h *Hub) Subscribe(gameID, clientID string) <-chan Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.games[gameID]
	if clients == nil {
		clients = make(map[string]chan Envelope)
		h.games[gameID] = clients
	}
	if old, ok := clients[clientID]; ok {
		close(old)
	}
	ch := make(chan Envelope, subscriberBuffer)
	clients[clientID] = ch
	return ch
}

// Unsubscribe drops the client and closes its stream. The last client
// leaving removes the game entry.
func (h *Hub) Unsubscribe(gameID, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.games[gameID]
	if !ok {
		return
	}
	if ch, ok := clients[clientID]; ok {
		close(ch)
		delete(clients, clientID)
	}
	if len(clients) == 0 {
		delete(h.games, gameID)
	}
}

// Broadcast sends the event to every subscriber of the game. Subscribers
// with a full buffer miss the event; delivery is at-most-once by design.
func (h *Hub) Broadcast(gameID, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.games[gameID]
	if !ok {
		return
	}
	envelope := Envelope{Event: event, Data: data}
	for clientID, ch := range clients {
		select {
		case ch <- envelope:
		default:
			log.Printf("event dropped game_id=%s client_id=%s event=%s", gameID, clientID, event)
		}
	}
}

// Subscribers reports how many clients are attached to a game.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[gameID])
}
