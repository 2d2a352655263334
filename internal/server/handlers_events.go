package server

import (
	"io"

	"activity-game/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// handleEvents streams game events over SSE until the client disconnects.
// One subscription per connection; reconnecting replaces the previous
// subscription for the same client id.
func (s *Server) handleEvents(c *gin.Context) {
	gameID := c.Param("gameId")
	if _, err := s.games.GameDetails(c.Request.Context(), gameID); err != nil {
		respondError(c, err)
		return
	}

	clientID := currentUserID(c) + ":" + uuid.NewString()
	ch := s.hub.Subscribe(gameID, clientID)
	defer s.hub.Unsubscribe(gameID, clientID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case env, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("message", events.Envelope{Event: env.Event, Data: env.Data})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
