package server

import (
	"activity-game/internal/events"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	gameID := c.Param("gameId")
	message, err := s.chat.SaveMessage(c.Request.Context(), gameID, currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(gameID, events.ChatMessage, message)
	respondOK(c, message, "message sent")
}

func (s *Server) handleChatHistory(c *gin.Context) {
	history, err := s.chat.History(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, history, "")
}
