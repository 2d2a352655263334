package server

import (
	"log"

	"activity-game/internal/events"
	"activity-game/internal/game"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateGame(c *gin.Context) {
	gameID, err := s.games.CreateGame(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, created, "game created")
}

func (s *Server) handleCurrentGame(c *gin.Context) {
	active, err := s.games.ActiveGameFor(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if active == nil {
		respondError(c, game.ErrGameNotFound("current"))
		return
	}
	respondOK(c, active, "")
}

func (s *Server) handleGameDetails(c *gin.Context) {
	details, err := s.games.GameDetails(c.Request.Context(), c.Param("gameId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, details, "")
}

func (s *Server) handleJoinGame(c *gin.Context) {
	gameID := c.Param("gameId")
	userID := currentUserID(c)
	if err := s.games.JoinGame(c.Request.Context(), gameID, userID); err != nil {
		respondError(c, err)
		return
	}

	joined, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(gameID, events.UserJoinedLobby, joined)
	respondOK(c, joined, "joined game")
}

func (s *Server) handleStartGame(c *gin.Context) {
	gameID := c.Param("gameId")
	turn, err := s.games.StartGame(c.Request.Context(), gameID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(gameID, events.GameStarted, turn)
	respondOK(c, turn, "game started")
}

type endTurnRequest struct {
	WinnerUserID string `json:"winner_user_id" binding:"required"`
}

func (s *Server) handleEndTurn(c *gin.Context) {
	var req endTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	gameID := c.Param("gameId")
	finished, err := s.games.EndTurn(c.Request.Context(), gameID, currentUserID(c), req.WinnerUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	if finished {
		s.hub.Broadcast(gameID, events.GameEnded, updated)
		respondOK(c, updated, "game ended")
		return
	}
	s.hub.Broadcast(gameID, events.RoundEnded, updated)
	respondOK(c, updated, "round ended")
}

func (s *Server) handleTimeUp(c *gin.Context) {
	gameID := c.Param("gameId")
	if err := s.games.TimeUp(c.Request.Context(), gameID); err != nil {
		respondError(c, err)
		return
	}

	updated, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(gameID, events.TimeUp, updated)
	respondOK(c, updated, "round timed out")
}

func (s *Server) handleLeaveLobby(c *gin.Context) {
	gameID := c.Param("gameId")
	userID := currentUserID(c)
	if err := s.games.LeaveLobby(c.Request.Context(), gameID, userID); err != nil {
		respondError(c, err)
		return
	}

	// The lobby is gone when its last member leaves; nobody is left to
	// notify in that case.
	remaining, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err == nil {
		s.hub.Broadcast(gameID, events.PlayerLeftLobby, remaining)
	}
	respondOK(c, nil, "left lobby")
}

func (s *Server) handleLeaveGame(c *gin.Context) {
	gameID := c.Param("gameId")
	userID := currentUserID(c)
	gameOver, err := s.games.LeaveGame(c.Request.Context(), gameID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		log.Printf("leave broadcast skipped game_id=%s err=%v", gameID, err)
	} else if gameOver {
		s.hub.Broadcast(gameID, events.GameEnded, updated)
	} else {
		s.hub.Broadcast(gameID, events.PlayerLeftLobby, updated)
	}
	respondOK(c, nil, "left game")
}

type updateSettingsRequest struct {
	TimerMinutes   int      `json:"timer_minutes" binding:"required,gt=1"`
	MaxScore       int      `json:"max_score" binding:"required,gt=1"`
	EnabledMethods []string `json:"enabled_methods" binding:"required,min=1,dive,guessmethod"`
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	methods := make([]game.MethodType, 0, len(req.EnabledMethods))
	for _, name := range req.EnabledMethods {
		method, err := game.ParseMethodType(name)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		methods = append(methods, method)
	}

	gameID := c.Param("gameId")
	if err := s.games.UpdateSettings(c.Request.Context(), gameID, req.TimerMinutes, req.MaxScore, methods); err != nil {
		respondError(c, err)
		return
	}

	updated, err := s.games.GameDetails(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	s.hub.Broadcast(gameID, events.GameSettingsUpdated, updated)
	respondOK(c, updated, "settings updated")
}
